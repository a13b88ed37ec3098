package cmd

import (
	"fmt"

	"github.com/MeKo-Tech/beercolor/internal/palette"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var convertCmd = &cobra.Command{
	Use:   "convert RATING...",
	Short: "Convert ratings to sRGB",
	Long: `Convert one or more SRM/EBC ratings to sRGB.

Ratings may be given as separate arguments or comma separated, e.g.
"beercolor convert 4 12,20 --scale ebc".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().String("format", "text", "Output format (text, json, csv)")
	bindFlags(convertCmd, []flagBinding{
		{"convert.format", "format"},
	})
}

func runConvert(cmd *cobra.Command, args []string) error {
	scale, err := scaleFromConfig()
	if err != nil {
		return err
	}
	path, err := pathFromConfig()
	if err != nil {
		return err
	}
	values, err := parseValues(args)
	if err != nil {
		return err
	}

	entries := make([]palette.Entry, len(values))
	for i, v := range values {
		entries[i] = palette.NewEntry(scale, v, path)
	}

	out := cmd.OutOrStdout()
	format := viper.GetString("convert.format")
	if format == "text" {
		for _, e := range entries {
			fmt.Fprintf(out, "%s\t%s\t%.6f %.6f %.6f\n", palette.FormatValue(e.Value), e.Hex, e.RGB.R, e.RGB.G, e.RGB.B)
		}
		return nil
	}

	f, err := palette.ParseFormat(format)
	if err != nil {
		return fmt.Errorf("invalid format %q: must be 'text', 'json' or 'csv'", format)
	}
	return palette.Write(out, f, entries)
}
