package beercolor

import (
	"fmt"
	"image/color"
	"math"
)

// XYZ is a CIE 1931 tristimulus value, scaled so that white has Y = 1.
type XYZ struct {
	X, Y, Z float64
}

// LinearRGB is an sRGB triplet before gamma encoding. Components may lie
// outside [0,1].
type LinearRGB struct {
	R, G, B float64
}

// RGB is a gamma encoded sRGB triplet with components in [0,1].
type RGB struct {
	R, G, B float64
}

// Linear converts to linear sRGB (D65).
func (c XYZ) Linear() LinearRGB {
	return LinearRGB{
		R: 3.240479*c.X - 1.537150*c.Y - 0.498535*c.Z,
		G: -0.969256*c.X + 1.875992*c.Y + 0.041556*c.Z,
		B: 0.055648*c.X - 0.204043*c.Y + 1.057311*c.Z,
	}
}

// Encode applies the sRGB transfer curve to every channel.
func (c LinearRGB) Encode() RGB {
	return RGB{R: Encode(c.R), G: Encode(c.G), B: Encode(c.B)}
}

// Encode applies the sRGB transfer curve to a linear value and clamps the
// result to [0,1]. Negative values take the linear segment, so the power
// function only ever sees positive input.
func Encode(t float64) float64 {
	if t <= 0.0031308 {
		t *= 12.92
	} else {
		t = 1.055*math.Pow(t, 1.0/2.4) - 0.055
	}
	return clamp01(t)
}

// clamp01 also maps NaN to 0.
func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// to8 scales a channel to 0..255 with rounding.
func to8(v float64) uint8 {
	n := math.Round(v * 255.0)
	if !(n > 0) {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B))
}

// RGBToHex formats rgb as #rrggbb.
func RGBToHex(rgb RGB) string {
	return rgb.Hex()
}

// NRGBA returns the opaque 8-bit color.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: 255}
}

// Luminance returns the relative luminance of the color (WCAG definition).
func (c RGB) Luminance() float64 {
	lin := func(v float64) float64 {
		if v <= 0.04045 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.R) + 0.7152*lin(c.G) + 0.0722*lin(c.B)
}
