package scramble

import (
	"image/color"
	"math/rand/v2"

	"spritemix/palette"
)

// distinctColors lists the image's (R, G, B, A) tuples in the order they
// first appear in a raster scan. RGB pixels have A = 0xff.
func distinctColors(src *Buffer) []color.NRGBA {
	seen := make(map[color.NRGBA]struct{})
	var res []color.NRGBA
	for i := range src.Width * src.Height {
		c := src.NRGBAAt(i)
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			res = append(res, c)
		}
	}
	return res
}

func (e *Engine) sprite(src *Buffer, pal palette.Palette, rng *rand.Rand) *Buffer {
	shuffled := Shuffled(rng, pal.Colors)

	distinct := distinctColors(src)
	mapping := make(map[color.NRGBA]color.RGBA, len(distinct))
	for idx, c := range distinct {
		mapping[c] = Cycle(shuffled, idx)
	}
	logger().Debug("sprite colors", "distinct", len(distinct), "palette", len(shuffled))

	out := NewBuffer(src.Width, src.Height, src.Mode)
	ch := src.Mode.Channels()
	e.rows(src.Height, func(y0, y1 int) {
		for i := y0 * src.Width; i < y1*src.Width; i++ {
			c := mapping[src.NRGBAAt(i)]

			d := out.Pix[i*ch : i*ch+3 : i*ch+3]
			d[0], d[1], d[2] = c.R, c.G, c.B
		}
		out.copyAlpha(src, y0, y1)
	})

	return out
}
