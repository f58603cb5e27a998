package labcolor

import (
	"errors"
	"fmt"
)

var ErrChannels = errors.New("unsupported number of channels")

type Image struct {
	// Pix holds the image's pixels in L, A, B order. The pixel at (x, y)
	// starts at Pix[(y*Width+x)*3].
	Pix []float64
	// Width and Height are the image's dimensions.
	Width, Height int
}

// values per pixel: L, a, b
const labStride = 3

func NewImage(width, height int) *Image {
	return &Image{
		Pix:    make([]float64, width*height*labStride),
		Width:  width,
		Height: height,
	}
}

// ToLab converts a packed 8-bit RGB (3 channels) or RGBA (4 channels)
// buffer to Lab. Alpha is ignored.
func ToLab(pix []uint8, channels, width, height int) (*Image, error) {
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("%w: %d", ErrChannels, channels)
	}
	if n := width * height * channels; len(pix) != n {
		return nil, fmt.Errorf("pixel buffer holds %d bytes, want %d", len(pix), n)
	}

	img := NewImage(width, height)
	img.FromRGB(pix, channels, 0, height)
	return img, nil
}

// FromRGB fills rows [y0, y1) from a packed RGB/RGBA buffer of the same
// dimensions.
func (img *Image) FromRGB(pix []uint8, channels, y0, y1 int) {
	for i := y0 * img.Width; i < y1*img.Width; i++ {
		s := pix[i*channels : i*channels+3 : i*channels+3]
		img.Set(i, FromRGB(s[0], s[1], s[2]))
	}
}

// ToRGB writes the color channels of every pixel into dst, a packed
// buffer with the given number of channels. The alpha byte of RGBA
// destinations is left untouched.
func (img *Image) ToRGB(dst []uint8, channels int) error {
	if channels != 3 && channels != 4 {
		return fmt.Errorf("%w: %d", ErrChannels, channels)
	}
	if n := img.Width * img.Height * channels; len(dst) != n {
		return fmt.Errorf("pixel buffer holds %d bytes, want %d", len(dst), n)
	}

	img.RowsToRGB(dst, channels, 0, img.Height)
	return nil
}

// RowsToRGB is ToRGB restricted to rows [y0, y1), without validation.
func (img *Image) RowsToRGB(dst []uint8, channels, y0, y1 int) {
	for i := y0 * img.Width; i < y1*img.Width; i++ {
		d := dst[i*channels : i*channels+3 : i*channels+3]
		d[0], d[1], d[2] = img.At(i).RGB()
	}
}

// At returns the i-th pixel in raster order.
func (img *Image) At(i int) Lab {
	p := img.Pix[i*labStride : i*labStride+3 : i*labStride+3]
	return Lab{L: p[0], A: p[1], B: p[2]}
}

func (img *Image) Set(i int, lc Lab) {
	p := img.Pix[i*labStride : i*labStride+3 : i*labStride+3]
	p[0], p[1], p[2] = lc.L, lc.A, lc.B
}

func (img *Image) Len() int {
	return img.Width * img.Height
}
