package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/MeKo-Tech/beercolor/internal/palette"
	"github.com/MeKo-Tech/beercolor/internal/render"
	"github.com/MeKo-Tech/beercolor/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the palette page, color API and rendered PNGs",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	def := server.DefaultConfig()
	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Listen address (host:port)")
	serveCmd.Flags().Float64("page-from", def.PageRange.From, "First rating on the index page")
	serveCmd.Flags().Float64("page-to", def.PageRange.To, "Last rating on the index page")
	serveCmd.Flags().Float64("page-step", def.PageRange.Step, "Rating step on the index page")
	serveCmd.Flags().Int("max-cache-entries", def.MaxCacheEntries, "Rendered PNGs kept in memory (0 disables caching)")
	serveCmd.Flags().String("cache-control", def.CacheControl, "Cache-Control header for served images")
	serveCmd.Flags().String("png-compression", "default", "PNG compression (default, speed, best, none)")

	mustBind := func(key string, name string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind flag: %v", err))
		}
	}

	mustBind("serve.addr", "addr")
	mustBind("serve.page_from", "page-from")
	mustBind("serve.page_to", "page-to")
	mustBind("serve.page_step", "page-step")
	mustBind("serve.max_cache_entries", "max-cache-entries")
	mustBind("serve.cache_control", "cache-control")
	mustBind("serve.png_compression", "png-compression")
}

func runServe(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	path, err := pathFromConfig()
	if err != nil {
		return err
	}
	compression, err := render.ParseCompression(viper.GetString("serve.png_compression"))
	if err != nil {
		return err
	}

	cfg := server.DefaultConfig()
	cfg.DefaultPathCm = path
	cfg.PageRange = palette.Range{
		From: viper.GetFloat64("serve.page_from"),
		To:   viper.GetFloat64("serve.page_to"),
		Step: viper.GetFloat64("serve.page_step"),
	}
	cfg.MaxCacheEntries = viper.GetInt("serve.max_cache_entries")
	cfg.CacheControl = viper.GetString("serve.cache_control")
	cfg.PNGCompression = compression

	srv, err := server.New(cfg, logger)
	if err != nil {
		return err
	}

	addr := viper.GetString("serve.addr")
	logger.Info("palette server listening",
		"addr", addr,
		"path_cm", path,
		"page_from", cfg.PageRange.From,
		"page_to", cfg.PageRange.To,
		"max_cache_entries", cfg.MaxCacheEntries,
	)

	httpSrv := &http.Server{Addr: addr, Handler: srv.Handler(), ReadHeaderTimeout: 5 * time.Second}
	return httpSrv.ListenAndServe()
}

func ensureParentDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	return nil
}
