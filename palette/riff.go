package palette

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"io"

	"golang.org/x/image/riff"
)

/*
typedef struct tagLOGPALETTE {
  WORD         palVersion;
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1];
} LOGPALETTE;

typedef struct tagPALETTEENTRY {
  BYTE peRed;
  BYTE peGreen;
  BYTE peBlue;
  BYTE peFlags;
} PALETTEENTRY;
*/

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

const palVersion = 0x0300

// ReadRIFF loads a Microsoft RIFF palette. Colors of every data chunk are
// concatenated into a single palette called name.
func ReadRIFF(name string, r io.Reader) (Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return Palette{}, fmt.Errorf("%w: could not open RIFF stream: %w", ErrConfigInvalid, err)
	} else if formType != palType {
		return Palette{}, fmt.Errorf("%w: unsupported RIFF content type: %s", ErrConfigInvalid, string(formType[:]))
	}

	colors, err := readChunks(rd, name)
	if err != nil {
		return Palette{}, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	if len(colors) == 0 {
		return Palette{}, fmt.Errorf("%w: %q", ErrEmptyPalette, name)
	}

	return Palette{Name: name, Colors: colors}, nil
}

func readChunks(r *riff.Reader, ident string) ([]color.RGBA, error) {
	var res []color.RGBA

	for n := 0; ; n++ {
		id, size, data, err := r.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("could not read chunk %s#%d: %w", ident, n, err)
		}

		if id == riff.LIST {
			listType, list, lerr := riff.NewListReader(size, data)
			if lerr != nil {
				return nil, fmt.Errorf("could not read list from chunk %s#%d: %w", ident, n, lerr)
			} else if listType != palType {
				return nil, fmt.Errorf("chunk %s#%d unsupported type: %s", ident, n, string(listType[:]))
			}

			listRes, lerr := readChunks(list, fmt.Sprintf("%s%d.%s", ident, n, listType[:]))
			if lerr != nil {
				return nil, lerr
			}
			res = append(res, listRes...)
			continue
		} else if id != dataType {
			return nil, fmt.Errorf("unsupported chunk type in %s#%d: %s", ident, n, id[:])
		}

		colors, err := readColors(data, fmt.Sprintf("%s#%d", ident, n))
		if err != nil {
			return nil, err
		}
		res = append(res, colors...)
	}

	return res, nil
}

func readColors(r io.Reader, ident string) ([]color.RGBA, error) {
	buf := make([]byte, 4)

	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("could not read header from chunk %s: %w", ident, err)
	}

	if ver := binary.LittleEndian.Uint16(buf); ver != palVersion {
		return nil, fmt.Errorf("unsupported palette version in chunk %s: %#x", ident, ver)
	}

	count := binary.LittleEndian.Uint16(buf[2:])
	res := make([]color.RGBA, count)
	for i := range count {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("could not read color %d/%d from chunk %s: %w", i, count, ident, err)
		}

		res[i] = color.RGBA{
			R: buf[0],
			G: buf[1],
			B: buf[2],
			A: 0xff,
		}
	}

	return res, nil
}

// WriteRIFF stores a palette as a single data chunk RIFF palette and
// returns the number of bytes written.
func WriteRIFF(w io.Writer, p Palette) (int64, error) {
	if p.Len() > 0xffff {
		return 0, fmt.Errorf("palette %q has too many colors for RIFF: %d", p.Name, p.Len())
	}

	chunkSize := 4 + p.Len()*4 // palVersion + palNumEntries + 4 bytes/color
	buf := make([]byte, 0, 12+8+chunkSize)

	buf = append(buf, riffType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(4+8+chunkSize)) // form type + chunk header + chunk
	buf = append(buf, palType[:]...)

	buf = append(buf, dataType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(chunkSize))
	buf = binary.LittleEndian.AppendUint16(buf, palVersion)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(p.Len()))
	for _, c := range p.Colors {
		buf = append(buf, c.R, c.G, c.B, 0x00)
	}

	n, err := w.Write(buf)
	if err != nil {
		return int64(n), fmt.Errorf("could not save palette %q: %w", p.Name, err)
	} else if n != len(buf) {
		return int64(n), fmt.Errorf("could not save palette %q: wrote only %d/%d bytes", p.Name, n, len(buf))
	}

	return int64(n), nil
}
