// Package render draws rendered beer colors as PNG images: flat swatches,
// labelled palette charts and side views of a filled glass.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Compression selects the PNG encoder compression level.
type Compression string

const (
	CompressionDefault Compression = "default"
	CompressionSpeed   Compression = "speed"
	CompressionBest    Compression = "best"
	CompressionNone    Compression = "none"
)

// ParseCompression accepts default, speed, best or none. The empty string
// selects the default level.
func ParseCompression(s string) (Compression, error) {
	switch c := Compression(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CompressionDefault, nil
	case CompressionDefault, CompressionSpeed, CompressionBest, CompressionNone:
		return c, nil
	}
	return "", fmt.Errorf("invalid png compression %q: must be default, speed, best or none", s)
}

func (c Compression) level() png.CompressionLevel {
	switch c {
	case CompressionSpeed:
		return png.BestSpeed
	case CompressionBest:
		return png.BestCompression
	case CompressionNone:
		return png.NoCompression
	}
	return png.DefaultCompression
}

// EncodePNG writes img to w.
func EncodePNG(w io.Writer, img image.Image, c Compression) error {
	enc := png.Encoder{CompressionLevel: c.level()}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// PNGBytes encodes img into memory.
func PNGBytes(img image.Image, c Compression) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePNG writes img to path, creating parent directories as needed.
func WritePNG(path string, img image.Image, c Compression) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := EncodePNG(f, img, c); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
