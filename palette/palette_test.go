package palette

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "#FF0000", want: color.RGBA{R: 255, A: 255}},
		{in: "#00ff7f", want: color.RGBA{G: 255, B: 127, A: 255}},
		{in: "#123456", want: color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 255}},
		{in: "#000000", want: color.RGBA{A: 255}},
		{in: "FF0000", wantErr: true},
		{in: "#F00", wantErr: true},
		{in: "#FF00000", wantErr: true},
		{in: "#GG0000", wantErr: true},
		{in: "#12345g", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := HexToRGB(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrParse) {
					t.Fatalf("HexToRGB(%q) error = %v, want ErrParse", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("HexToRGB(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("HexToRGB(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoadKeepsOrder(t *testing.T) {
	set, err := Load(strings.NewReader(`{
		"zeta": ["#FF0000", "#00FF00"],
		"alpha": ["#0000FF"],
		"mid": ["#FFFFFF", "#000000", "#808080"]
	}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got, want := set.Names(), []string{"zeta", "alpha", "mid"}; !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	p, err := set.Get("mid")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got, want := p.Hex(), []string{"#ffffff", "#000000", "#808080"}; !slices.Equal(got, want) {
		t.Errorf("Hex() = %v, want %v", got, want)
	}

	if _, err = set.Get("nope"); !errors.Is(err, ErrUnknownPalette) {
		t.Errorf("Get(nope) error = %v, want ErrUnknownPalette", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		is    error
	}{
		{name: "syntax", input: `{"a": ["#FF0000"`, is: ErrConfigInvalid},
		{name: "not an object", input: `["#FF0000"]`, is: ErrConfigInvalid},
		{name: "empty object", input: `{}`, is: ErrConfigInvalid},
		{name: "empty palette", input: `{"a": []}`, is: ErrEmptyPalette},
		{name: "not a list", input: `{"a": "#FF0000"}`, is: ErrConfigInvalid},
		{name: "bad hex", input: `{"a": ["#FF0000", "red"]}`, is: ErrParse},
		{name: "bad hex is invalid config", input: `{"a": ["#FF0000", "red"]}`, is: ErrConfigInvalid},
		{name: "trailing data", input: `{"a": ["#FF0000"]} {}`, is: ErrConfigInvalid},
		{name: "empty input", input: ``, is: ErrConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Load(strings.NewReader(tt.input))
			if !errors.Is(err, tt.is) {
				t.Fatalf("Load error = %v, want %v", err, tt.is)
			}
			if set != nil {
				t.Errorf("Load returned a set on error")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("missing file error = %v, want ErrConfigNotFound", err)
	}

	path := filepath.Join(dir, "palettes.json")
	if err := os.WriteFile(path, []byte(`{"rgb": ["#FF0000", "#00FF00", "#0000FF"]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	set, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if set.Len() != 1 {
		t.Errorf("Len() = %d, want 1", set.Len())
	}
}

func TestSetAdd(t *testing.T) {
	set := NewSet()
	if err := set.Add(Palette{Name: "empty"}); !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("Add(empty) error = %v, want ErrEmptyPalette", err)
	}

	red := Palette{Name: "p", Colors: []color.RGBA{{R: 255, A: 255}}}
	blue := Palette{Name: "p", Colors: []color.RGBA{{B: 255, A: 255}}}
	if err := set.Add(red); err != nil {
		t.Fatal(err)
	}
	if err := set.Add(blue); err != nil {
		t.Fatal(err)
	}

	if set.Len() != 1 {
		t.Errorf("replacing a palette changed Len() to %d", set.Len())
	}
	if p, _ := set.Get("p"); p.Colors[0] != blue.Colors[0] {
		t.Errorf("Get returned %v, want the replacement", p.Colors)
	}
}
