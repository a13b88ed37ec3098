// Package server serves the palette page, a JSON color API and rendered PNGs.
package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MeKo-Tech/beercolor/assets"
	"github.com/MeKo-Tech/beercolor/beercolor"
	"github.com/MeKo-Tech/beercolor/internal/palette"
	"github.com/MeKo-Tech/beercolor/internal/render"
)

// Config configures the server.
type Config struct {
	// DefaultPathCm is used when a request carries no path parameter.
	DefaultPathCm float64
	// PageRange is the list of ratings shown on the index page.
	PageRange      palette.Range
	SwatchSize     int
	MaxImageSize   int
	Glass          render.GlassOptions
	PNGCompression render.Compression
	CacheControl   string
	// MaxCacheEntries bounds the in-memory PNG cache (0 disables caching).
	MaxCacheEntries int
}

// DefaultConfig returns the settings used by `beercolor serve`.
func DefaultConfig() Config {
	return Config{
		DefaultPathCm:   beercolor.DefaultPath,
		PageRange:       palette.Range{From: 1, To: 50, Step: 1},
		SwatchSize:      64,
		MaxImageSize:    1024,
		Glass:           render.DefaultGlassOptions(),
		PNGCompression:  render.CompressionDefault,
		CacheControl:    "public, max-age=86400",
		MaxCacheEntries: 1024,
	}
}

// Server renders beer colors over HTTP.
type Server struct {
	cfg    Config
	logger *slog.Logger
	page   *template.Template

	mu    sync.Mutex
	cache map[string][]byte
}

// New creates a server.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	if cfg.DefaultPathCm <= 0 {
		return nil, fmt.Errorf("default path must be positive")
	}
	if err := cfg.PageRange.Validate(); err != nil {
		return nil, fmt.Errorf("invalid page range: %w", err)
	}
	if cfg.SwatchSize <= 0 || cfg.MaxImageSize <= 0 {
		return nil, fmt.Errorf("image sizes must be positive")
	}

	page, err := template.ParseFS(assets.WebFS, "web/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	return &Server{
		cfg:    cfg,
		logger: logger,
		page:   page,
		cache:  make(map[string][]byte),
	}, nil
}

// Handler returns the HTTP handler for all routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /{$}", s.serveIndex)
	mux.HandleFunc("GET /api/color", s.serveColor)
	mux.HandleFunc("GET /api/palette", s.servePalette)
	mux.HandleFunc("GET /swatch/{scale}/{value}", s.serveSwatch)
	mux.HandleFunc("GET /glass/{scale}/{value}", s.serveGlass)
	return withCORS(mux)
}

type pageRow struct {
	Value string
	Hex   string
	Light bool
}

type pageData struct {
	Scale      string
	ScaleParam string
	PathCm     string
	Rows       []pageRow
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	scale, err := scaleParam(q.Get("scale"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	path, err := s.pathParam(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := palette.Build(scale, s.cfg.PageRange, path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := pageData{
		Scale:      scale.String(),
		ScaleParam: strings.ToLower(scale.String()),
		PathCm:     palette.FormatValue(path),
		Rows:       make([]pageRow, len(entries)),
	}
	for i, e := range entries {
		data.Rows[i] = pageRow{
			Value: palette.FormatValue(e.Value),
			Hex:   e.Hex,
			Light: e.RGB.Luminance() > 0.179,
		}
	}

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.log().Error("Failed to render page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log().Error("Failed to write response", "error", err)
	}
}

func (s *Server) serveColor(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	scale, err := scaleParam(q.Get("scale"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if q.Get("value") == "" {
		http.Error(w, "missing value parameter", http.StatusBadRequest)
		return
	}
	value, err := ratingParam(q.Get("value"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	path, err := s.pathParam(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.writeJSON(w, palette.NewEntry(scale, value, path).JSON())
}

func (s *Server) servePalette(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	scale, err := scaleParam(q.Get("scale"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	path, err := s.pathParam(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rng := palette.DefaultRange
	for _, p := range []struct {
		name string
		dst  *float64
	}{{"from", &rng.From}, {"to", &rng.To}, {"step", &rng.Step}} {
		if v := q.Get(p.name); v != "" {
			f, err := finiteFloat(p.name, v)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			*p.dst = f
		}
	}
	if rng.From < 0 {
		http.Error(w, "from must not be negative", http.StatusBadRequest)
		return
	}

	format := palette.FormatJSON
	if v := q.Get("format"); v != "" {
		if format, err = palette.ParseFormat(v); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	entries, err := palette.Build(scale, rng, path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := palette.Write(&buf, format, entries); err != nil {
		s.log().Error("Failed to encode palette", "error", err)
		http.Error(w, "failed to encode palette", http.StatusInternalServerError)
		return
	}
	if format == palette.FormatCSV {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log().Error("Failed to write response", "error", err)
	}
}

func (s *Server) serveSwatch(w http.ResponseWriter, r *http.Request) {
	scale, value, path, ok := s.imageParams(w, r)
	if !ok {
		return
	}
	size, err := s.sizeParam(r.URL.Query(), "size", s.cfg.SwatchSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	key := fmt.Sprintf("swatch/%s/%g/%g/%d", scale, value, path, size)
	s.servePNG(w, key, func() ([]byte, error) {
		img, err := render.Swatch(scale.ToSRGB(value, path), size, size)
		if err != nil {
			return nil, err
		}
		return render.PNGBytes(img, s.cfg.PNGCompression)
	})
}

func (s *Server) serveGlass(w http.ResponseWriter, r *http.Request) {
	scale, value, path, ok := s.imageParams(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	opts := s.cfg.Glass
	opts.PathCm = path

	var err error
	if opts.Width, err = s.sizeParam(q, "width", opts.Width); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if opts.Height, err = s.sizeParam(q, "height", opts.Height); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if v := q.Get("haze"); v != "" {
		if opts.Haze, err = finiteFloat("haze", v); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	key := fmt.Sprintf("glass/%s/%g/%g/%dx%d/%g", scale, value, path, opts.Width, opts.Height, opts.Haze)
	s.servePNG(w, key, func() ([]byte, error) {
		img, err := render.Glass(scale, value, opts)
		if err != nil {
			return nil, err
		}
		return render.PNGBytes(img, s.cfg.PNGCompression)
	})
}

// servePNG writes a cached PNG or renders and caches it.
func (s *Server) servePNG(w http.ResponseWriter, key string, renderFn func() ([]byte, error)) {
	data, ok := s.cached(key)
	if !ok {
		var err error
		data, err = renderFn()
		if err != nil {
			s.log().Warn("Failed to render image", "key", key, "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.store(key, data)
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", s.cfg.CacheControl)
	if _, err := w.Write(data); err != nil {
		s.log().Error("Failed to write response", "error", err)
	}
}

func (s *Server) cached(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.cache[key]
	return data, ok
}

func (s *Server) store(key string, data []byte) {
	if s.cfg.MaxCacheEntries <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cache) >= s.cfg.MaxCacheEntries {
		// Evict an arbitrary entry.
		for k := range s.cache {
			delete(s.cache, k)
			break
		}
	}
	s.cache[key] = data
}

// CacheLen returns the number of cached images.
func (s *Server) CacheLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cache)
}

func (s *Server) imageParams(w http.ResponseWriter, r *http.Request) (beercolor.Scale, float64, float64, bool) {
	scale, err := scaleParam(r.PathValue("scale"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, 0, 0, false
	}
	value, err := ratingParam(strings.TrimSuffix(r.PathValue("value"), ".png"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, 0, 0, false
	}
	path, err := s.pathParam(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, 0, 0, false
	}
	return scale, value, path, true
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log().Error("Failed to write response", "error", err)
	}
}

func (s *Server) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

func scaleParam(v string) (beercolor.Scale, error) {
	if v == "" {
		return beercolor.SRM, nil
	}
	return beercolor.ParseScale(v)
}

func finiteFloat(name, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return f, nil
}

func ratingParam(v string) (float64, error) {
	f, err := finiteFloat("value", v)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("value must not be negative")
	}
	return f, nil
}

func (s *Server) pathParam(q url.Values) (float64, error) {
	v := q.Get("path")
	if v == "" {
		return s.cfg.DefaultPathCm, nil
	}
	f, err := finiteFloat("path", v)
	if err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, fmt.Errorf("path must be positive")
	}
	return f, nil
}

func (s *Server) sizeParam(q url.Values, name string, def int) (int, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || n > s.cfg.MaxImageSize {
		return 0, fmt.Errorf("%s must be within [1,%d]", name, s.cfg.MaxImageSize)
	}
	return n, nil
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
