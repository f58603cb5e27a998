package palette

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"os"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	ErrConfigNotFound = errors.New("palette configuration not found")
	ErrConfigInvalid  = errors.New("invalid palette configuration")
	ErrParse          = errors.New("malformed hex color")
	ErrEmptyPalette   = errors.New("empty palette")
	ErrUnknownPalette = errors.New("unknown palette")
)

// Palette is a named, ordered list of opaque colors.
type Palette struct {
	Name   string
	Colors []color.RGBA
}

func (p Palette) Len() int {
	return len(p.Colors)
}

// Hex returns the colors as #rrggbb strings.
func (p Palette) Hex() []string {
	res := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		res[i] = fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return res
}

// HexToRGB parses a #RRGGBB string.
func HexToRGB(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("%w: %q: want #RRGGBB", ErrParse, s)
	}
	for i := 1; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return color.RGBA{}, fmt.Errorf("%w: %q: invalid digit %q", ErrParse, s, s[i])
		}
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %w", ErrParse, err)
	}

	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// Set holds palettes by name, remembering the order they were added in.
type Set struct {
	names    []string
	palettes map[string]Palette
}

func NewSet() *Set {
	return &Set{palettes: make(map[string]Palette)}
}

// Add inserts or replaces a palette.
func (s *Set) Add(p Palette) error {
	if p.Len() == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyPalette, p.Name)
	}

	if _, ok := s.palettes[p.Name]; !ok {
		s.names = append(s.names, p.Name)
	}
	s.palettes[p.Name] = p
	return nil
}

func (s *Set) Names() []string {
	return append([]string(nil), s.names...)
}

func (s *Set) Len() int {
	return len(s.names)
}

func (s *Set) Get(name string) (Palette, error) {
	p, ok := s.palettes[name]
	if !ok {
		return Palette{}, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
	}
	return p, nil
}

// LoadFile reads a JSON palette configuration from disk.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("could not read palettes %q: %w", path, err)
	}

	set, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Load parses a JSON object mapping palette names to lists of #RRGGBB
// colors. Palettes keep the order they are declared in.
func Load(r io.Reader) (*Set, error) {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	set := NewSet()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
		}
		name := tok.(string)

		var hexes []string
		if err = dec.Decode(&hexes); err != nil {
			return nil, fmt.Errorf("%w: palette %q: %w", ErrConfigInvalid, name, err)
		}

		p, err := parsePalette(name, hexes)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
		}
		if err = set.Add(p); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after palettes", ErrConfigInvalid)
	}

	if set.Len() == 0 {
		return nil, fmt.Errorf("%w: no palettes defined", ErrConfigInvalid)
	}

	return set, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrConfigInvalid, want, tok)
	}
	return nil
}

func parsePalette(name string, hexes []string) (Palette, error) {
	p := Palette{
		Name:   name,
		Colors: make([]color.RGBA, len(hexes)),
	}
	for i, h := range hexes {
		c, err := HexToRGB(h)
		if err != nil {
			return Palette{}, fmt.Errorf("palette %q color %d: %w", name, i, err)
		}
		p.Colors[i] = c
	}
	return p, nil
}
