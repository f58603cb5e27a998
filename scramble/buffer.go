package scramble

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var ErrUnsupportedImageMode = errors.New("unsupported image mode")

// Mode tells which channels a Buffer stores per pixel.
type Mode int

const (
	ModeRGB Mode = iota + 1
	ModeRGBA
)

func (m Mode) Channels() int {
	switch m {
	case ModeRGB:
		return 3
	case ModeRGBA:
		return 4
	default:
		return 0
	}
}

func (m Mode) String() string {
	switch m {
	case ModeRGB:
		return "RGB"
	case ModeRGBA:
		return "RGBA"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Buffer is a packed 8-bit RGB or RGBA image. Alpha is not premultiplied.
type Buffer struct {
	// Pix holds the pixels in R, G, B[, A] order. The pixel at (x, y)
	// starts at Pix[(y*Width+x)*Mode.Channels()].
	Pix           []uint8
	Width, Height int
	Mode          Mode
}

var _ image.Image = &Buffer{}

func NewBuffer(width, height int, mode Mode) *Buffer {
	return &Buffer{
		Pix:    make([]uint8, width*height*mode.Channels()),
		Width:  width,
		Height: height,
		Mode:   mode,
	}
}

// Validate checks the mode and that Pix matches the dimensions.
func (b *Buffer) Validate() error {
	ch := b.Mode.Channels()
	if ch == 0 {
		return fmt.Errorf("%w: %s", ErrUnsupportedImageMode, b.Mode)
	}
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("invalid image size %dx%d", b.Width, b.Height)
	}
	if n := b.Width * b.Height * ch; len(b.Pix) != n {
		return fmt.Errorf("%s pixel buffer holds %d bytes, want %d", b.Mode, len(b.Pix), n)
	}
	return nil
}

func (b *Buffer) ColorModel() color.Model {
	return color.NRGBAModel
}

func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

func (b *Buffer) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(b.Bounds())) {
		return color.NRGBA{}
	}
	return b.NRGBAAt(y*b.Width + x)
}

// NRGBAAt returns the i-th pixel in raster order.
func (b *Buffer) NRGBAAt(i int) color.NRGBA {
	ch := b.Mode.Channels()
	p := b.Pix[i*ch : i*ch+ch : i*ch+ch]
	c := color.NRGBA{R: p[0], G: p[1], B: p[2], A: 0xff}
	if ch == 4 {
		c.A = p[3]
	}
	return c
}

// Opaque scans the image and reports whether it is fully opaque.
func (b *Buffer) Opaque() bool {
	if b.Mode != ModeRGBA {
		return true
	}
	for i := 3; i < len(b.Pix); i += 4 {
		if b.Pix[i] != 0xff {
			return false
		}
	}
	return true
}

// copyAlpha copies the alpha bytes of rows [y0, y1) from src to b. Both
// buffers must have the same size and mode.
func (b *Buffer) copyAlpha(src *Buffer, y0, y1 int) {
	if b.Mode != ModeRGBA {
		return
	}
	for i := y0*b.Width*4 + 3; i < y1*b.Width*4; i += 4 {
		b.Pix[i] = src.Pix[i]
	}
}

// FromImage copies img into a new Buffer. Images reporting themselves
// opaque become RGB, everything else RGBA.
func FromImage(img image.Image) *Buffer {
	mode := ModeRGBA
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		mode = ModeRGB
	}

	r := img.Bounds()
	buf := NewBuffer(r.Dx(), r.Dy(), mode)
	ch := mode.Channels()
	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			p := buf.Pix[i : i+ch : i+ch]
			p[0], p[1], p[2] = c.R, c.G, c.B
			if ch == 4 {
				p[3] = c.A
			}
			i += ch
		}
	}

	return buf
}
