package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/MeKo-Tech/beercolor/internal/palette"
	"github.com/MeKo-Tech/beercolor/internal/render"
	"github.com/MeKo-Tech/beercolor/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render swatch or glass PNGs for a range of ratings",
	Long: `Render one PNG per rating into <output-dir>/<kind>/ using a pool of workers.

Existing files are skipped unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	addRangeFlags(renderCmd, "render", palette.DefaultRange)
	glass := render.DefaultGlassOptions()
	renderCmd.Flags().String("kind", "swatch", "What to render (swatch, glass)")
	renderCmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	renderCmd.Flags().Bool("progress", true, "Show progress bar")
	renderCmd.Flags().Bool("force", false, "Overwrite existing images")
	renderCmd.Flags().Bool("allow-failures", false, "Exit successfully even if some images fail")
	renderCmd.Flags().Int("size", 64, "Swatch size in pixels (square)")
	renderCmd.Flags().Int("width", glass.Width, "Glass image width in pixels")
	renderCmd.Flags().Int("height", glass.Height, "Glass image height in pixels")
	renderCmd.Flags().Float64("haze", glass.Haze, "Glass haze strength (0..1)")
	renderCmd.Flags().Int64("seed", glass.Seed, "Deterministic seed for the haze noise")
	renderCmd.Flags().String("png-compression", "default", "PNG compression (default, speed, best, none)")

	bindFlags(renderCmd, []flagBinding{
		{"render.kind", "kind"},
		{"render.workers", "workers"},
		{"render.progress", "progress"},
		{"render.force", "force"},
		{"render.allow_failures", "allow-failures"},
		{"render.size", "size"},
		{"render.width", "width"},
		{"render.height", "height"},
		{"render.haze", "haze"},
		{"render.seed", "seed"},
		{"render.png_compression", "png-compression"},
	})
}

func runRender(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	scale, err := scaleFromConfig()
	if err != nil {
		return err
	}
	path, err := pathFromConfig()
	if err != nil {
		return err
	}
	rng, err := rangeFromConfig("render")
	if err != nil {
		return err
	}
	kind, err := worker.ParseKind(viper.GetString("render.kind"))
	if err != nil {
		return err
	}
	compression, err := render.ParseCompression(viper.GetString("render.png_compression"))
	if err != nil {
		return err
	}
	size := viper.GetInt("render.size")
	if size <= 0 {
		return fmt.Errorf("size must be positive")
	}

	glass := render.DefaultGlassOptions()
	glass.Width = viper.GetInt("render.width")
	glass.Height = viper.GetInt("render.height")
	glass.Haze = viper.GetFloat64("render.haze")
	glass.Seed = viper.GetInt64("render.seed")

	workers := viper.GetInt("render.workers")
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	outputDir := viper.GetString("output-dir")
	showProgress := viper.GetBool("render.progress")

	tasks := worker.TasksFor(scale, rng.Values(), path, viper.GetBool("render.force"))

	logger.Info("Starting batch render",
		"kind", kind,
		"scale", scale.String(),
		"from", rng.From,
		"to", rng.To,
		"step", rng.Step,
		"path_cm", path,
		"count", len(tasks),
		"workers", workers,
		"output_dir", outputDir,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	progress := worker.NewProgress(kind, len(tasks), showProgress)
	pool := worker.New(worker.Config{
		Workers: workers,
		Renderer: &worker.FileRenderer{
			OutputDir:   outputDir,
			Kind:        kind,
			SwatchSize:  size,
			Glass:       glass,
			Compression: compression,
			Logger:      logger,
		},
		OnProgress: progress.Callback(),
	})

	results := pool.Run(ctx, tasks)
	progress.Done()

	for _, r := range results {
		if r.Err != nil {
			logger.Error("Render failed", "task", r.Task.String(), "error", r.Err)
		}
	}
	logger.Info(progress.Summary())

	if failed := worker.Failed(results); failed > 0 {
		if viper.GetBool("render.allow_failures") {
			logger.Warn("Some images failed to render, but continuing due to --allow-failures flag", "failed_count", failed)
			return nil
		}
		return fmt.Errorf("%d of %d images failed to render", failed, len(tasks))
	}
	return nil
}
