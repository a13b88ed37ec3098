package render

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/MeKo-Tech/beercolor/beercolor"
)

// Swatch returns a w×h image filled with rgb.
func Swatch(rgb beercolor.RGB, w, h int) (*image.NRGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("swatch size must be positive, got %dx%d", w, h)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(rgb.NRGBA()), image.Point{}, draw.Src)
	return img, nil
}
