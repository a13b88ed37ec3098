package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/MeKo-Tech/beercolor/beercolor"
	"github.com/aquilax/go-perlin"
	"github.com/disintegration/gift"
	"golang.org/x/image/vector"
)

// GlassOptions controls the glass renderer.
type GlassOptions struct {
	Width  int
	Height int
	// PathCm is the inner diameter of the glass at its widest point.
	PathCm float64
	// Supersample renders at this multiple of the output size before
	// downscaling.
	Supersample int
	// Haze perturbs the local path length with Perlin noise (0 disables).
	Haze       float64
	NoiseScale float64
	Seed       int64
	// BlurSigma softens the glass edges before downscaling (0 disables).
	BlurSigma  float32
	Background color.NRGBA
	// Foam draws a head of this fraction of the glass height (0 disables).
	Foam float64
}

// DefaultGlassOptions returns a 160×240 render of the BJCP sample glass.
func DefaultGlassOptions() GlassOptions {
	return GlassOptions{
		Width:       160,
		Height:      240,
		PathCm:      beercolor.DefaultPath,
		Supersample: 2,
		Haze:        0,
		NoiseScale:  24,
		Seed:        1337,
		BlurSigma:   0.8,
		Background:  color.NRGBA{R: 244, G: 240, B: 232, A: 255},
		Foam:        0.12,
	}
}

func (o GlassOptions) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("glass size must be positive, got %dx%d", o.Width, o.Height)
	}
	if o.Supersample < 1 || o.Supersample > 8 {
		return fmt.Errorf("supersample must be within [1,8]")
	}
	if o.PathCm < 0 || math.IsNaN(o.PathCm) || math.IsInf(o.PathCm, 0) {
		return fmt.Errorf("path must be a finite non-negative length")
	}
	if o.Haze < 0 || o.Haze > 1 {
		return fmt.Errorf("haze must be within [0,1]")
	}
	if o.Foam < 0 || o.Foam >= 1 {
		return fmt.Errorf("foam must be within [0,1)")
	}
	if o.Haze > 0 && o.NoiseScale <= 0 {
		return fmt.Errorf("noise scale must be positive")
	}
	return nil
}

// glass profile as fractions of the canvas.
const (
	glassTop         = 0.06
	glassBottom      = 0.96
	glassTopWidth    = 0.86
	glassBottomWidth = 0.64
)

// pathLevels quantizes per-pixel path lengths so the spectral pipeline runs
// once per level instead of once per pixel.
const pathLevels = 512

// Glass renders a side view of a cylindrical glass filled with beer of the
// given rating. Light crossing the glass off-centre travels a shorter chord,
// so the liquid lightens towards the walls.
func Glass(scale beercolor.Scale, value float64, opts GlassOptions) (*image.NRGBA, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	ss := opts.Supersample
	w, h := opts.Width*ss, opts.Height*ss
	bounds := image.Rect(0, 0, w, h)

	canvas := image.NewNRGBA(bounds)
	draw.Draw(canvas, bounds, image.NewUniform(opts.Background), image.Point{}, draw.Src)

	silhouette := glassMask(w, h)
	liquid := image.NewNRGBA(bounds)

	var noise *perlin.Perlin
	if opts.Haze > 0 {
		noise = perlin.NewPerlin(2.0, 2.0, 3, opts.Seed)
	}

	cache := make(map[int]color.NRGBA)
	shade := func(path float64) color.NRGBA {
		level := 0
		if opts.PathCm > 0 {
			level = int(math.Round(path / opts.PathCm * pathLevels))
		}
		if c, ok := cache[level]; ok {
			return c
		}
		c := scale.ToSRGB(value, float64(level)*opts.PathCm/pathLevels).NRGBA()
		cache[level] = c
		return c
	}

	top := glassTop * float64(h)
	bottom := glassBottom * float64(h)
	foamLine := top + opts.Foam*(bottom-top)
	foam := foamColor(scale, value)
	cx := float64(w) / 2

	for y := 0; y < h; y++ {
		fy := float64(y) + 0.5
		if fy < top || fy > bottom {
			continue
		}
		half := halfWidth(fy, float64(h), float64(w))
		for x := 0; x < w; x++ {
			if fy < foamLine {
				liquid.SetNRGBA(x, y, foam)
				continue
			}
			d := math.Abs(float64(x)+0.5-cx) / half
			if d >= 1 {
				continue
			}
			path := opts.PathCm * math.Sqrt(1-d*d)
			if noise != nil {
				n := noise.Noise2D(float64(x)/(opts.NoiseScale*float64(ss)), float64(y)/(opts.NoiseScale*float64(ss)))
				path = math.Max(0, path*(1+opts.Haze*n))
				path = math.Min(path, 2*opts.PathCm)
			}
			liquid.SetNRGBA(x, y, shade(path))
		}
	}

	draw.DrawMask(canvas, bounds, liquid, image.Point{}, silhouette, image.Point{}, draw.Over)

	var filters []gift.Filter
	if opts.BlurSigma > 0 {
		filters = append(filters, gift.GaussianBlur(opts.BlurSigma*float32(ss)))
	}
	if ss > 1 {
		filters = append(filters, gift.Resize(opts.Width, opts.Height, gift.LanczosResampling))
	}
	if len(filters) == 0 {
		return canvas, nil
	}
	g := gift.New(filters...)
	dst := image.NewNRGBA(g.Bounds(canvas.Bounds()))
	g.Draw(dst, canvas)
	return dst, nil
}

// halfWidth returns the inner half width of the tapered glass at height y.
func halfWidth(y, h, w float64) float64 {
	t := (y/h - glassTop) / (glassBottom - glassTop)
	t = math.Max(0, math.Min(1, t))
	frac := glassTopWidth + (glassBottomWidth-glassTopWidth)*t
	return frac * w / 2
}

// glassMask rasterizes the tapered glass outline into an alpha mask.
func glassMask(w, h int) *image.Alpha {
	fw, fh := float32(w), float32(h)
	top := float32(glassTop) * fh
	bottom := float32(glassBottom) * fh
	topHalf := float32(glassTopWidth) * fw / 2
	bottomHalf := float32(glassBottomWidth) * fw / 2
	cx := fw / 2

	ras := vector.NewRasterizer(w, h)
	ras.MoveTo(cx-topHalf, top)
	ras.LineTo(cx+topHalf, top)
	ras.LineTo(cx+bottomHalf, bottom)
	ras.LineTo(cx-bottomHalf, bottom)
	ras.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// foamColor is the beer seen through a thin film, mixed towards white.
func foamColor(scale beercolor.Scale, value float64) color.NRGBA {
	thin := scale.ToSRGB(value, 0.05).NRGBA()
	mix := func(c uint8) uint8 {
		return uint8((int(c) + 3*255) / 4)
	}
	return color.NRGBA{R: mix(thin.R), G: mix(thin.G), B: mix(thin.B), A: 255}
}
