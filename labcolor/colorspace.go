// based on:
// http://www.brucelindbloom.com/index.html?Eqn_RGB_XYZ_Matrix.html
// http://www.brucelindbloom.com/index.html?Eqn_XYZ_to_Lab.html

package labcolor

import (
	"image/color"
	"math"
)

// D65 reference white
const (
	whiteX = 0.95047
	whiteY = 1.00000
	whiteZ = 1.08883
)

const (
	epsilon    = 0.008856
	kappa      = 903.3
	epsilonInv = 0.206893 // cbrt(epsilon)
)

type Lab struct {
	L float64 // lightness, 0..100
	A float64 // green (-) to red (+)
	B float64 // blue (-) to yellow (+)
}

var Model = color.ModelFunc(labConvert)

func labConvert(c color.Color) color.Color {
	if _, ok := c.(Lab); ok {
		return c
	}

	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return FromRGB(nc.R, nc.G, nc.B)
}

// FromRGB converts an 8-bit sRGB triple to CIELAB.
func FromRGB(r, g, b uint8) Lab {
	return fromNormalized(float64(r)/255, float64(g)/255, float64(b)/255)
}

func fromNormalized(r, g, b float64) Lab {
	r, g, b = toLinear(r), toLinear(g), toLinear(b)

	x := (r*0.4124564 + g*0.3575761 + b*0.1804375) / whiteX
	y := (r*0.2126729 + g*0.7151522 + b*0.0721750) / whiteY
	z := (r*0.0193339 + g*0.1191920 + b*0.9503041) / whiteZ

	x, y, z = labF(x), labF(y), labF(z)

	return Lab{
		L: 116*y - 16,
		A: 500 * (x - y),
		B: 200 * (y - z),
	}
}

// Normalized returns the gamma-encoded sRGB channels in [0,1]. Colors
// outside the sRGB gamut are not clipped.
func (lc Lab) Normalized() (float64, float64, float64) {
	y := (lc.L + 16) / 116
	x := lc.A/500 + y
	z := y - lc.B/200

	x = whiteX * labFInv(x)
	y = whiteY * labFInv(y)
	z = whiteZ * labFInv(z)

	r := x*3.2404542 - y*1.5371385 - z*0.4985314
	g := -x*0.9692660 + y*1.8760108 + z*0.0415560
	b := x*0.0556434 - y*0.2040259 + z*1.0572252

	return fromLinear(r), fromLinear(g), fromLinear(b)
}

// RGB returns the closest 8-bit sRGB triple.
func (lc Lab) RGB() (uint8, uint8, uint8) {
	r, g, b := lc.Normalized()
	return to8(r), to8(g), to8(b)
}

func (lc Lab) RGBA() (uint32, uint32, uint32, uint32) {
	r, g, b := lc.RGB()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}.RGBA()
}

// DistanceSq is the squared Euclidean distance in Lab space.
func (lc Lab) DistanceSq(o Lab) float64 {
	dL := lc.L - o.L
	da := lc.A - o.A
	db := lc.B - o.B
	return dL*dL + da*da + db*db
}

func labF(t float64) float64 {
	if t > epsilon {
		return math.Cbrt(t)
	}
	return (kappa*t + 16) / 116
}

// labFInv is the exact inverse of labF, the linear branch uses 116/kappa.
func labFInv(t float64) float64 {
	if t > epsilonInv {
		return t * t * t
	}
	return (t - 16.0/116) * 116 / kappa
}

func to8(x float64) uint8 {
	return uint8(math.Round(clamp(x, 0, 1) * 255))
}

func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	} else if x > max {
		return max
	} else {
		return x
	}
}
