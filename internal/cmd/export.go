package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MeKo-Tech/beercolor/internal/palette"
	"github.com/MeKo-Tech/beercolor/internal/render"
	"github.com/MeKo-Tech/beercolor/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a palette to a SQLite database",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	addRangeFlags(exportCmd, "export", palette.DefaultRange)
	exportCmd.Flags().String("out", "", "Output database (default: <output-dir>/palette.db)")
	exportCmd.Flags().Bool("swatches", false, "Store a PNG swatch with every color")
	exportCmd.Flags().Int("swatch-size", 32, "Swatch size in pixels (square)")
	exportCmd.Flags().String("name", "", "Palette name stored in the metadata")

	bindFlags(exportCmd, []flagBinding{
		{"export.out", "out"},
		{"export.swatches", "swatches"},
		{"export.swatch_size", "swatch-size"},
		{"export.name", "name"},
	})
}

func runExport(cmd *cobra.Command, args []string) error {
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
	rng, err := rangeFromConfig("export")
	if err != nil {
		return err
	}
	withSwatches := viper.GetBool("export.swatches")
	swatchSize := viper.GetInt("export.swatch_size")
	if withSwatches && swatchSize <= 0 {
		return fmt.Errorf("swatch size must be positive")
	}

	out := viper.GetString("export.out")
	if out == "" {
		out = filepath.Join(viper.GetString("output-dir"), "palette.db")
	}
	if err := ensureParentDir(out); err != nil {
		return err
	}

	entries, err := palette.Build(scale, rng, path)
	if err != nil {
		return err
	}

	name := viper.GetString("export.name")
	if name == "" {
		name = fmt.Sprintf("%s %s-%s", scale, palette.FormatValue(rng.From), palette.FormatValue(rng.To))
	}
	w, err := store.New(out, store.Metadata{
		Name:        name,
		Description: fmt.Sprintf("%s ratings rendered through %scm of beer", scale, palette.FormatValue(path)),
		Version:     "1",
		Scale:       strings.ToLower(scale.String()),
		PathCm:      path,
		Count:       len(entries),
	})
	if err != nil {
		return err
	}

	for _, e := range entries {
		var swatch []byte
		if withSwatches {
			img, err := render.Swatch(e.RGB, swatchSize, swatchSize)
			if err != nil {
				w.Close()
				return err
			}
			if swatch, err = render.PNGBytes(img, render.CompressionBest); err != nil {
				w.Close()
				return err
			}
		}
		if err := w.WriteEntry(e, swatch); err != nil {
			w.Close()
			return fmt.Errorf("failed to write %s %s: %w", scale, palette.FormatValue(e.Value), err)
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	logger.Info("Palette exported", "path", out, "entries", len(entries), "swatches", withSwatches)
	return nil
}
