package palette

import (
	"fmt"
	"image/color"
	"math"

	"spritemix/labcolor"
)

// Lab is a palette converted to CIELAB, in palette order.
type Lab []labcolor.Lab

func NewLab(p Palette) Lab {
	pal := make(Lab, 0, p.Len())
	for _, c := range p.Colors {
		pal = append(pal, labcolor.Model.Convert(c).(labcolor.Lab))
	}
	return pal
}

// Index returns the position of the entry closest to lc. On ties the
// first entry wins. An empty palette yields -1.
func (p Lab) Index(lc labcolor.Lab) int {
	ret, bestSum := -1, math.Inf(1)
	for i, v := range p {
		if sum := lc.DistanceSq(v); sum < bestSum {
			ret, bestSum = i, sum
		}
	}
	return ret
}

func (p Lab) Convert(lc labcolor.Lab) labcolor.Lab {
	if len(p) == 0 {
		return labcolor.Lab{}
	}
	return p[p.Index(lc)]
}

// RGBA converts every entry back to 8-bit sRGB.
func (p Lab) RGBA() []color.RGBA {
	res := make([]color.RGBA, len(p))
	for i, lc := range p {
		res[i] = color.RGBAModel.Convert(lc).(color.RGBA)
	}
	return res
}

// Closest returns the candidate nearest to target by Euclidean distance.
func Closest(target labcolor.Lab, candidates []labcolor.Lab) (labcolor.Lab, error) {
	if len(candidates) == 0 {
		return labcolor.Lab{}, fmt.Errorf("%w: no candidate colors", ErrConfigInvalid)
	}
	return Lab(candidates).Convert(target), nil
}
