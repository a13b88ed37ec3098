package worker

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MeKo-Tech/beercolor/beercolor"
	"github.com/MeKo-Tech/beercolor/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRenderer_Swatch(t *testing.T) {
	dir := t.TempDir()
	r := &FileRenderer{OutputDir: dir, Kind: KindSwatch, SwatchSize: 16}

	task := Task{Scale: beercolor.SRM, Value: 20, PathCm: 5}
	path, err := r.Render(context.Background(), task)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "swatch", "srm_20_5cm.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())

	r8, g8, b8, _ := img.At(8, 8).RGBA()
	assert.Equal(t, [3]uint32{0x7d, 0x19, 0x00}, [3]uint32{r8 >> 8, g8 >> 8, b8 >> 8})
}

func TestFileRenderer_SkipsExisting(t *testing.T) {
	dir := t.TempDir()
	r := &FileRenderer{OutputDir: dir, Kind: KindSwatch, SwatchSize: 8}
	task := Task{Scale: beercolor.EBC, Value: 30, PathCm: 5}

	path, err := r.Render(context.Background(), task)
	require.NoError(t, err)

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	_, err = r.Render(context.Background(), task)
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old), "existing file should not be rewritten")

	task.Force = true
	_, err = r.Render(context.Background(), task)
	require.NoError(t, err)
	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().After(old), "forced task should rewrite the file")
}

func TestFileRenderer_GlassThroughPool(t *testing.T) {
	dir := t.TempDir()
	opts := render.DefaultGlassOptions()
	opts.Width, opts.Height = 40, 60
	r := &FileRenderer{OutputDir: dir, Kind: KindGlass, Glass: opts}

	pool := New(Config{Workers: 3, Renderer: r})
	results := pool.Run(context.Background(), TasksFor(beercolor.SRM, []float64{2, 10, 30}, 4, false))

	require.Len(t, results, 3)
	assert.Zero(t, Failed(results))
	for _, res := range results {
		assert.FileExists(t, res.Path)
	}
}

func TestFileRenderer_Cancelled(t *testing.T) {
	r := &FileRenderer{OutputDir: t.TempDir(), Kind: KindSwatch}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Render(ctx, Task{Scale: beercolor.SRM, Value: 1, PathCm: 5})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Glass")
	require.NoError(t, err)
	assert.Equal(t, KindGlass, k)

	_, err = ParseKind("mug")
	assert.Error(t, err)
}
