package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MeKo-Tech/beercolor/internal/palette"
	"github.com/MeKo-Tech/beercolor/internal/render"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Write a labelled palette chart PNG",
	Args:  cobra.NoArgs,
	RunE:  runChart,
}

func init() {
	rootCmd.AddCommand(chartCmd)

	addRangeFlags(chartCmd, "chart", palette.DefaultRange)
	def := render.DefaultChartOptions()
	chartCmd.Flags().String("out", "", "Output PNG (default: <output-dir>/chart_<scale>_<path>cm.png)")
	chartCmd.Flags().Int("columns", def.Columns, "Swatches per row")
	chartCmd.Flags().Int("cell-width", def.CellWidth, "Swatch width in pixels")
	chartCmd.Flags().Int("cell-height", def.CellHeight, "Swatch height in pixels")
	chartCmd.Flags().Int("gap", def.Gap, "Gap between swatches in pixels")
	chartCmd.Flags().Bool("labels", true, "Draw rating and hex labels")
	chartCmd.Flags().String("png-compression", "default", "PNG compression (default, speed, best, none)")

	bindFlags(chartCmd, []flagBinding{
		{"chart.out", "out"},
		{"chart.columns", "columns"},
		{"chart.cell_width", "cell-width"},
		{"chart.cell_height", "cell-height"},
		{"chart.gap", "gap"},
		{"chart.labels", "labels"},
		{"chart.png_compression", "png-compression"},
	})
}

func runChart(cmd *cobra.Command, args []string) error {
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
	rng, err := rangeFromConfig("chart")
	if err != nil {
		return err
	}
	compression, err := render.ParseCompression(viper.GetString("chart.png_compression"))
	if err != nil {
		return err
	}

	opts := render.DefaultChartOptions()
	opts.Columns = viper.GetInt("chart.columns")
	opts.CellWidth = viper.GetInt("chart.cell_width")
	opts.CellHeight = viper.GetInt("chart.cell_height")
	opts.Gap = viper.GetInt("chart.gap")
	opts.Labels = viper.GetBool("chart.labels")

	entries, err := palette.Build(scale, rng, path)
	if err != nil {
		return err
	}
	img, err := render.Chart(entries, opts)
	if err != nil {
		return err
	}

	out := viper.GetString("chart.out")
	if out == "" {
		name := fmt.Sprintf("chart_%s_%scm.png", strings.ToLower(scale.String()), palette.FormatValue(path))
		out = filepath.Join(viper.GetString("output-dir"), name)
	}
	if err := render.WritePNG(out, img, compression); err != nil {
		return err
	}

	logger.Info("Chart written", "path", out, "entries", len(entries))
	return nil
}
