package scramble

import (
	"image/color"
	"math/rand/v2"

	"spritemix/labcolor"
	"spritemix/palette"
)

// targets maps every palette index to the sRGB value of the entry it is
// permuted to.
func targets(lab palette.Lab, perm []int) []color.RGBA {
	shuffled := make(palette.Lab, len(lab))
	for i, j := range perm {
		shuffled[i] = lab[j]
	}
	return shuffled.RGBA()
}

func (e *Engine) regular(src *Buffer, pal palette.Palette, rng *rand.Rand) *Buffer {
	lab := palette.NewLab(pal)
	dest := targets(lab, Permutation(rng, len(lab)))

	out := NewBuffer(src.Width, src.Height, src.Mode)
	ch := src.Mode.Channels()
	e.rows(src.Height, func(y0, y1 int) {
		for i := y0 * src.Width; i < y1*src.Width; i++ {
			s := src.Pix[i*ch : i*ch+3 : i*ch+3]
			c := dest[lab.Index(labcolor.FromRGB(s[0], s[1], s[2]))]

			d := out.Pix[i*ch : i*ch+3 : i*ch+3]
			d[0], d[1], d[2] = c.R, c.G, c.B
		}
		out.copyAlpha(src, y0, y1)
	})

	return out
}
