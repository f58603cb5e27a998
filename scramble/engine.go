package scramble

import (
	"fmt"
	"math/rand/v2"
	"time"

	"spritemix/palette"
	"spritemix/parallel"
)

// Engine remaps images onto the palettes of a set.
type Engine struct {
	palettes *palette.Set
	workers  int
}

type Option func(*Engine)

// WithWorkers sets how many goroutines share the rows of an image. Values
// below 1 use GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

func New(set *palette.Set, opts ...Option) *Engine {
	e := &Engine{
		palettes: set,
		workers:  1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) ListPalettes() []string {
	return e.palettes.Names()
}

type remapConfig struct {
	rng *rand.Rand
}

type RemapOption func(*remapConfig)

// WithSeed makes the palette permutation reproducible.
func WithSeed(seed uint64) RemapOption {
	return func(c *remapConfig) {
		c.rng = newRand(seed)
	}
}

// WithRand draws the permutation from rng.
func WithRand(rng *rand.Rand) RemapOption {
	return func(c *remapConfig) {
		c.rng = rng
	}
}

// Remap returns a copy of src recolored with the named palette. The
// palette assignment is shuffled on every call unless a seed or random
// source is given. src is never modified.
func (e *Engine) Remap(src *Buffer, paletteName string, s Strategy, opts ...RemapOption) (*Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	pal, err := e.palettes.Get(paletteName)
	if err != nil {
		return nil, err
	}
	if pal.Len() == 0 {
		return nil, fmt.Errorf("%w: %q", palette.ErrEmptyPalette, paletteName)
	}

	var conf remapConfig
	for _, opt := range opts {
		opt(&conf)
	}
	if conf.rng == nil {
		conf.rng = newRand(rand.Uint64())
	}

	var remap func(*Buffer, palette.Palette, *rand.Rand) *Buffer
	switch s {
	case Regular:
		remap = e.regular
	case Sprite:
		remap = e.sprite
	case HiRes:
		remap = e.hiRes
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, s)
	}

	log := logger().With("palette", paletteName, "strategy", s)
	log.Debug("remapping", "width", src.Width, "height", src.Height, "mode", src.Mode, "colors", pal.Len())
	start := time.Now()

	dest := remap(src, pal, conf.rng)

	log.Debug("remapped", "elapsed", time.Since(start))
	return dest, nil
}

// rows runs fn over row bands of an image of the given height.
func (e *Engine) rows(height int, fn func(y0, y1 int)) {
	parallel.Split(height, e.workers, fn)
}
