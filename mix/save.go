package mix

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"spritemix/scramble"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

const (
	outputSuffix = "-sprite-mix"
	maxAttempts  = 10000
)

// writable lists the decoder names we also have encoders for.
var writable = map[string]bool{
	"gif":  true,
	"jpeg": true,
	"png":  true,
	"bmp":  true,
	"tiff": true,
}

// outputType resolves the format flag against the decoded image type.
func outputType(imgType, format string) string {
	outType, unsupOnly := strings.CutPrefix(format, "unsup:")
	if outType == "same" || (unsupOnly && writable[imgType]) {
		return imgType
	}
	return outType
}

// isOutput reports whether fileName looks like something save wrote.
func isOutput(fileName string) bool {
	return strings.Contains(filepath.Base(fileName), outputSuffix)
}

// createOutput creates <name>-sprite-mix<ext> in destDir, or the first
// free <name>-sprite-mix-N<ext>. Existing files are never touched.
func createOutput(destDir, srcName, ext string) (*os.File, error) {
	base := strings.TrimSuffix(srcName, filepath.Ext(srcName)) + outputSuffix

	for counter := 0; counter < maxAttempts; counter++ {
		name := base + ext
		if counter > 0 {
			name = fmt.Sprintf("%s-%d%s", base, counter, ext)
		}

		f, err := os.OpenFile(filepath.Join(destDir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, nil
		} else if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("could not create destination %q: %w", name, err)
		}
	}

	return nil, fmt.Errorf("no free destination name for %q after %d attempts", base+ext, maxAttempts)
}

func save(img *scramble.Buffer, imgType, format, destDir, srcName string) (path string, err error) {
	outType := outputType(imgType, format)

	ext := "." + outType
	if outType == imgType {
		ext = filepath.Ext(srcName)
	}

	outFile, err := createOutput(destDir, srcName, ext)
	if err != nil {
		return "", err
	}
	path = outFile.Name()
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush destination %q: %w", path, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close destination %q: %w", path, defErr)
		}

		if err != nil {
			_ = os.Remove(path)
			path = ""
		}
	}()

	if err = encode(outFile, img, outType); err != nil {
		return path, fmt.Errorf("could not encode %s destination %q: %w", strings.ToUpper(outType), path, err)
	}

	return path, nil
}

func encode(w io.Writer, img *scramble.Buffer, outType string) error {
	switch outType {
	case "gif":
		return gif.Encode(w, paletted(img), nil)
	case "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		return enc.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported output format: %s", outType)
	}
}

// paletted builds a GIF-ready image. Scrambled images rarely use more
// than 256 colors, in which case they are stored exactly; otherwise they
// are mapped onto a 3-3-2 RGB cube without dithering.
func paletted(img *scramble.Buffer) *image.Paletted {
	var pal color.Palette
	index := make(map[color.NRGBA]uint8)
	for i := range img.Width * img.Height {
		c := img.NRGBAAt(i)
		if c.A == 0 {
			c = color.NRGBA{}
		}
		if _, ok := index[c]; ok {
			continue
		}
		if len(pal) == 256 {
			pal = nil
			break
		}
		index[c] = uint8(len(pal))
		pal = append(pal, c)
	}

	if pal == nil {
		dest := image.NewPaletted(img.Bounds(), gifFallback)
		draw.Draw(dest, dest.Bounds(), img, image.Point{}, draw.Src)
		return dest
	}

	dest := image.NewPaletted(img.Bounds(), pal)
	for i := range img.Width * img.Height {
		c := img.NRGBAAt(i)
		if c.A == 0 {
			c = color.NRGBA{}
		}
		dest.Pix[i] = index[c]
	}
	return dest
}

var gifFallback = func() color.Palette {
	pal := make(color.Palette, 0, 256)
	for r := range 8 {
		for g := range 8 {
			for b := range 4 {
				pal = append(pal, color.RGBA{R: uint8(r * 255 / 7), G: uint8(g * 255 / 7), B: uint8(b * 255 / 3), A: 0xff})
			}
		}
	}
	return pal
}()

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
