package scramble

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

type Strategy int

const (
	// Regular matches every pixel against the palette in Lab space.
	Regular Strategy = iota
	// Sprite assigns palette colors to the image's distinct colors.
	Sprite
	// HiRes is Regular computed over whole-image Lab arrays.
	HiRes
)

var strategyNames = [...]string{"regular", "sprite", "hires"}

func Strategies() []string {
	return slices.Clone(strategyNames[:])
}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "regular", "standard":
		return Regular, nil
	case "sprite", "pixel":
		return Sprite, nil
	case "hires", "hi-res":
		return HiRes, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
