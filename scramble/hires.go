package scramble

import (
	"math/rand/v2"

	"spritemix/labcolor"
	"spritemix/palette"
)

// distances fills dist with the squared Lab distance of every pixel in
// [lo, hi) to every palette entry, laid out as [pixel][entry].
func distances(img *labcolor.Image, lab palette.Lab, lo, hi int, dist []float64) {
	n := len(lab)
	for i := lo; i < hi; i++ {
		px := img.At(i)
		row := dist[(i-lo)*n : (i-lo+1)*n : (i-lo+1)*n]
		for j, pc := range lab {
			row[j] = px.DistanceSq(pc)
		}
	}
}

// argmin stores in idx the position of the smallest value of every
// n-wide row of dist. The first minimum wins.
func argmin(dist []float64, n int, idx []int) {
	for p := range idx {
		row := dist[p*n : (p+1)*n : (p+1)*n]
		best := 0
		for j := 1; j < n; j++ {
			if row[j] < row[best] {
				best = j
			}
		}
		idx[p] = best
	}
}

// chunkPixels caps how many pixels share one distance tensor, so memory
// grows with the palette size only.
var chunkPixels = 1 << 14

// nearest computes the nearest palette index of every pixel.
func (e *Engine) nearest(img *labcolor.Image, lab palette.Lab) []int {
	idx := make([]int, img.Len())
	n := len(lab)
	e.rows(img.Height, func(y0, y1 int) {
		lo, hi := y0*img.Width, y1*img.Width
		chunk := min(chunkPixels, hi-lo)
		if chunk <= 0 {
			return
		}

		dist := make([]float64, chunk*n)
		for c := lo; c < hi; c += chunk {
			end := min(c+chunk, hi)
			d := dist[:(end-c)*n]
			distances(img, lab, c, end, d)
			argmin(d, n, idx[c:end])
		}
	})
	return idx
}

func (e *Engine) hiRes(src *Buffer, pal palette.Palette, rng *rand.Rand) *Buffer {
	lab := palette.NewLab(pal)
	perm := Permutation(rng, len(lab))

	ch := src.Mode.Channels()
	img := labcolor.NewImage(src.Width, src.Height)
	e.rows(src.Height, func(y0, y1 int) {
		img.FromRGB(src.Pix, ch, y0, y1)
	})

	idx := e.nearest(img, lab)

	shuffled := make(palette.Lab, len(lab))
	for i, j := range perm {
		shuffled[i] = lab[j]
	}

	out := NewBuffer(src.Width, src.Height, src.Mode)
	e.rows(src.Height, func(y0, y1 int) {
		for i := y0 * src.Width; i < y1*src.Width; i++ {
			img.Set(i, shuffled[idx[i]])
		}
		img.RowsToRGB(out.Pix, ch, y0, y1)
		out.copyAlpha(src, y0, y1)
	})

	return out
}
