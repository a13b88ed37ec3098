package cmd

import (
	"github.com/MeKo-Tech/beercolor/internal/palette"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print a table of ratings and their sRGB colors",
	Long:  `Print a table of ratings and their sRGB hex colors, by default SRM 1 to 40 as CSV.`,
	Args:  cobra.NoArgs,
	RunE:  runTable,
}

func init() {
	rootCmd.AddCommand(tableCmd)

	addRangeFlags(tableCmd, "table", palette.DefaultRange)
	tableCmd.Flags().String("format", "csv", "Output format (csv, json)")
	bindFlags(tableCmd, []flagBinding{
		{"table.format", "format"},
	})
}

func runTable(cmd *cobra.Command, args []string) error {
	scale, err := scaleFromConfig()
	if err != nil {
		return err
	}
	path, err := pathFromConfig()
	if err != nil {
		return err
	}
	rng, err := rangeFromConfig("table")
	if err != nil {
		return err
	}
	format, err := palette.ParseFormat(viper.GetString("table.format"))
	if err != nil {
		return err
	}

	entries, err := palette.Build(scale, rng, path)
	if err != nil {
		return err
	}
	return palette.Write(cmd.OutOrStdout(), format, entries)
}
