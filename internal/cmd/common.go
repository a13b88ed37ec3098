package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/MeKo-Tech/beercolor/beercolor"
	"github.com/MeKo-Tech/beercolor/internal/palette"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type flagBinding struct {
	key  string
	flag string
}

func bindFlags(cmd *cobra.Command, bindings []flagBinding) {
	for _, bf := range bindings {
		if err := viper.BindPFlag(bf.key, cmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

// addRangeFlags registers --from, --to and --step bound to <prefix>.from etc.
func addRangeFlags(cmd *cobra.Command, prefix string, def palette.Range) {
	cmd.Flags().Float64("from", def.From, "First rating of the range")
	cmd.Flags().Float64("to", def.To, "Last rating of the range (inclusive)")
	cmd.Flags().Float64("step", def.Step, "Distance between ratings")
	bindFlags(cmd, []flagBinding{
		{prefix + ".from", "from"},
		{prefix + ".to", "to"},
		{prefix + ".step", "step"},
	})
}

func rangeFromConfig(prefix string) (palette.Range, error) {
	r := palette.Range{
		From: viper.GetFloat64(prefix + ".from"),
		To:   viper.GetFloat64(prefix + ".to"),
		Step: viper.GetFloat64(prefix + ".step"),
	}
	if err := r.Validate(); err != nil {
		return r, err
	}
	if r.From < 0 {
		return r, fmt.Errorf("ratings must not be negative")
	}
	return r, nil
}

func scaleFromConfig() (beercolor.Scale, error) {
	return beercolor.ParseScale(viper.GetString("scale"))
}

func pathFromConfig() (float64, error) {
	path := viper.GetFloat64("path")
	if path <= 0 || math.IsNaN(path) || math.IsInf(path, 0) {
		return 0, fmt.Errorf("path must be a positive length in cm")
	}
	return path, nil
}

// parseValues parses rating arguments; commas separate several ratings
// within one argument.
func parseValues(args []string) ([]float64, error) {
	var values []float64
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := strconv.ParseFloat(part, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("invalid rating %q", part)
			}
			if v < 0 {
				return nil, fmt.Errorf("rating %q must not be negative", part)
			}
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("at least one rating is required")
	}
	return values, nil
}
