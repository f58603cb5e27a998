package scramble

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestFromImageModes(t *testing.T) {
	opaque := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	translucent := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := range 2 {
		for x := range 3 {
			opaque.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 80), G: uint8(y * 100), B: 7, A: 255})
			translucent.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 80), G: uint8(y * 100), B: 7, A: uint8(40 + x*50)})
		}
	}
	paletted := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.RGBA{R: 255, A: 255}, color.RGBA{B: 255, A: 255}})
	paletted.SetColorIndex(1, 1, 1)

	tests := []struct {
		name string
		img  image.Image
		mode Mode
	}{
		{name: "opaque nrgba", img: opaque, mode: ModeRGB},
		{name: "translucent nrgba", img: translucent, mode: ModeRGBA},
		{name: "paletted", img: paletted, mode: ModeRGB},
		{name: "gray", img: image.NewGray(image.Rect(0, 0, 2, 2)), mode: ModeRGB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := FromImage(tt.img)
			if buf.Mode != tt.mode {
				t.Fatalf("mode = %s, want %s", buf.Mode, tt.mode)
			}
			if err := buf.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}

			b := tt.img.Bounds()
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					want := color.NRGBAModel.Convert(tt.img.At(x, y))
					if got := buf.At(x-b.Min.X, y-b.Min.Y); got != want {
						t.Errorf("At(%d,%d) = %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	img.SetNRGBA(6, 5, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	img.SetNRGBA(5, 5, color.NRGBA{R: 9, A: 255})

	buf := FromImage(img)
	if buf.Width != 2 || buf.Height != 1 {
		t.Fatalf("size %dx%d, want 2x1", buf.Width, buf.Height)
	}
	if got := buf.NRGBAAt(1); got != (color.NRGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("NRGBAAt(1) = %v", got)
	}
}

func TestBufferImage(t *testing.T) {
	buf := NewBuffer(2, 1, ModeRGBA)
	copy(buf.Pix, []uint8{10, 20, 30, 40, 50, 60, 70, 255})

	if !buf.Bounds().Eq(image.Rect(0, 0, 2, 1)) {
		t.Errorf("Bounds() = %v", buf.Bounds())
	}
	if got := buf.At(0, 0); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 40}) {
		t.Errorf("At(0,0) = %v", got)
	}
	if got := buf.At(5, 5); got != (color.NRGBA{}) {
		t.Errorf("At outside bounds = %v", got)
	}
	if buf.Opaque() {
		t.Error("Opaque() = true with alpha 40")
	}

	buf.Pix[3] = 255
	if !buf.Opaque() {
		t.Error("Opaque() = false with full alpha")
	}
	if !NewBuffer(1, 1, ModeRGB).Opaque() {
		t.Error("RGB buffer not opaque")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		buf  *Buffer
		is   error
		ok   bool
	}{
		{name: "rgb", buf: NewBuffer(3, 2, ModeRGB), ok: true},
		{name: "rgba", buf: NewBuffer(3, 2, ModeRGBA), ok: true},
		{name: "zero mode", buf: &Buffer{Width: 1, Height: 1, Pix: make([]uint8, 3)}, is: ErrUnsupportedImageMode},
		{name: "negative", buf: &Buffer{Width: -1, Height: 1, Mode: ModeRGB}},
		{name: "length", buf: &Buffer{Width: 2, Height: 2, Mode: ModeRGBA, Pix: make([]uint8, 12)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.buf.Validate()
			switch {
			case tt.ok && err != nil:
				t.Errorf("Validate() = %v", err)
			case !tt.ok && err == nil:
				t.Error("Validate() = nil, want an error")
			case tt.is != nil && !errors.Is(err, tt.is):
				t.Errorf("Validate() = %v, want %v", err, tt.is)
			}
		})
	}
}
