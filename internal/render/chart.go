package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/MeKo-Tech/beercolor/internal/palette"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ChartOptions controls the palette chart layout.
type ChartOptions struct {
	Columns    int
	CellWidth  int
	CellHeight int
	Gap        int
	Background color.NRGBA
	Labels     bool
}

// DefaultChartOptions returns an 8 column layout of 96×64 cells with labels.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Columns:    8,
		CellWidth:  96,
		CellHeight: 64,
		Gap:        4,
		Background: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Labels:     true,
	}
}

// darkInkThreshold is the luminance above which black text has more contrast
// than white text.
const darkInkThreshold = 0.179

// Chart lays out one swatch per entry in row-major order.
func Chart(entries []palette.Entry, opts ChartOptions) (*image.NRGBA, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("chart needs at least one entry")
	}
	if opts.Columns <= 0 || opts.CellWidth <= 0 || opts.CellHeight <= 0 || opts.Gap < 0 {
		return nil, fmt.Errorf("invalid chart layout %+v", opts)
	}

	cols := min(opts.Columns, len(entries))
	rows := (len(entries) + cols - 1) / cols
	width := cols*opts.CellWidth + (cols+1)*opts.Gap
	height := rows*opts.CellHeight + (rows+1)*opts.Gap

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	for i, e := range entries {
		col, row := i%cols, i/cols
		x0 := opts.Gap + col*(opts.CellWidth+opts.Gap)
		y0 := opts.Gap + row*(opts.CellHeight+opts.Gap)
		cell := image.Rect(x0, y0, x0+opts.CellWidth, y0+opts.CellHeight)
		draw.Draw(img, cell, image.NewUniform(e.RGB.NRGBA()), image.Point{}, draw.Src)

		if !opts.Labels {
			continue
		}
		ink := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		if e.RGB.Luminance() > darkInkThreshold {
			ink = color.NRGBA{A: 255}
		}
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(ink),
			Face: face,
		}
		lineHeight := face.Metrics().Height.Ceil()
		d.Dot = fixed.P(x0+4, y0+4+face.Ascent)
		d.DrawString(fmt.Sprintf("%s %s", e.Scale, palette.FormatValue(e.Value)))
		if opts.CellHeight >= 2*lineHeight+8 {
			d.Dot = fixed.P(x0+4, y0+4+face.Ascent+lineHeight)
			d.DrawString(e.Hex)
		}
	}
	return img, nil
}
