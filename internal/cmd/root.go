package cmd

import (
	"fmt"
	"os"

	"github.com/MeKo-Tech/beercolor/beercolor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "beercolor",
	Short: "Render SRM/EBC beer color ratings as sRGB colors",
	Long: `beercolor renders beer color ratings on the SRM or EBC scale as sRGB colors.

It models the absorbance spectrum of beer, integrates the transmitted light
against the CIE 1931 observer under illuminant D65 and prints, charts, exports
or serves the resulting colors.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().String("scale", "srm", "Color scale of the ratings (srm, ebc)")
	rootCmd.PersistentFlags().Float64("path", beercolor.DefaultPath, "Transmission path in cm (glass width)")
	rootCmd.PersistentFlags().String("output-dir", "./out", "Output directory for generated files")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose logging")

	for _, name := range []string{"scale", "path", "output-dir", "verbose"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind flag: %v", err))
		}
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("BEERCOLOR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}
