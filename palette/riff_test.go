package palette

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image/color"
	"testing"
)

func TestRIFFRoundTrip(t *testing.T) {
	p := Palette{
		Name: "mixed",
		Colors: []color.RGBA{
			{R: 1, G: 2, B: 3, A: 255},
			{R: 255, G: 128, B: 0, A: 255},
			{A: 255},
		},
	}

	var buf bytes.Buffer
	n, err := WriteRIFF(&buf, p)
	if err != nil {
		t.Fatalf("WriteRIFF: %v", err)
	}
	if want := int64(12 + 8 + 4 + 3*4); n != want || int64(buf.Len()) != want {
		t.Errorf("wrote %d bytes (buffer %d), want %d", n, buf.Len(), want)
	}

	got, err := ReadRIFF("copy", &buf)
	if err != nil {
		t.Fatalf("ReadRIFF: %v", err)
	}
	if got.Name != "copy" || len(got.Colors) != len(p.Colors) {
		t.Fatalf("ReadRIFF = %+v", got)
	}
	for i := range p.Colors {
		if got.Colors[i] != p.Colors[i] {
			t.Errorf("color %d: %v, want %v", i, got.Colors[i], p.Colors[i])
		}
	}
}

func TestReadRIFFErrors(t *testing.T) {
	var buf bytes.Buffer
	if _, err := WriteRIFF(&buf, Palette{Name: "empty"}); err != nil {
		t.Fatalf("WriteRIFF: %v", err)
	}
	if _, err := ReadRIFF("empty", bytes.NewReader(buf.Bytes())); !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("empty palette error = %v, want ErrEmptyPalette", err)
	}

	if _, err := ReadRIFF("junk", bytes.NewReader([]byte("not a riff file"))); !errors.Is(err, ErrConfigInvalid) {
		t.Errorf("junk error = %v, want ErrConfigInvalid", err)
	}

	wave := []byte("RIFF")
	wave = binary.LittleEndian.AppendUint32(wave, 4)
	wave = append(wave, "WAVE"...)
	if _, err := ReadRIFF("wave", bytes.NewReader(wave)); !errors.Is(err, ErrConfigInvalid) {
		t.Errorf("WAVE error = %v, want ErrConfigInvalid", err)
	}

	bad := make([]byte, buf.Len())
	copy(bad, buf.Bytes())
	bad[20] = 0x01 // palVersion
	if _, err := ReadRIFF("version", bytes.NewReader(bad)); !errors.Is(err, ErrConfigInvalid) {
		t.Errorf("bad version error = %v, want ErrConfigInvalid", err)
	}
}
