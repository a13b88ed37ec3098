package worker

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/MeKo-Tech/beercolor/beercolor"
	"github.com/MeKo-Tech/beercolor/internal/render"
)

// Kind selects what FileRenderer draws.
type Kind string

const (
	KindSwatch Kind = "swatch"
	KindGlass  Kind = "glass"
)

// ParseKind accepts "swatch" or "glass".
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(s)); k {
	case KindSwatch, KindGlass:
		return k, nil
	}
	return "", fmt.Errorf("invalid kind %q: must be 'swatch' or 'glass'", s)
}

// FileRenderer writes one PNG per task into OutputDir.
type FileRenderer struct {
	OutputDir   string
	Kind        Kind
	SwatchSize  int
	Glass       render.GlassOptions
	Compression render.Compression
	Logger      *slog.Logger
}

// Path returns the output file for a task.
func (r *FileRenderer) Path(task Task) string {
	return filepath.Join(r.OutputDir, string(r.Kind), task.String()+".png")
}

// Render draws the task and writes it, skipping existing files unless the
// task is forced.
func (r *FileRenderer) Render(ctx context.Context, task Task) (string, error) {
	path := r.Path(task)
	if !task.Force {
		if _, err := os.Stat(path); err == nil {
			r.log().Debug("Image already exists; skipping", "task", task.String(), "path", path)
			return path, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		img image.Image
		err error
	)
	switch r.Kind {
	case KindGlass:
		opts := r.Glass
		opts.PathCm = task.PathCm
		img, err = render.Glass(task.Scale, task.Value, opts)
	case KindSwatch:
		size := r.SwatchSize
		if size <= 0 {
			size = 64
		}
		img, err = render.Swatch(task.Scale.ToSRGB(task.Value, task.PathCm), size, size)
	default:
		return "", fmt.Errorf("unsupported kind %q", r.Kind)
	}
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", task, err)
	}

	if err := render.WritePNG(path, img, r.Compression); err != nil {
		return "", err
	}
	r.log().Debug("Image written", "task", task.String(), "path", path)
	return path, nil
}

func (r *FileRenderer) log() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func lowerScale(s beercolor.Scale) string {
	return strings.ToLower(s.String())
}
