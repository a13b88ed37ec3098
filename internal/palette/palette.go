// Package palette builds tables of rendered beer colors over a rating range.
package palette

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/MeKo-Tech/beercolor/beercolor"
)

// MaxEntries bounds the size of a single palette.
const MaxEntries = 10000

// Entry is one rendered rating.
type Entry struct {
	Scale  beercolor.Scale
	Value  float64
	PathCm float64
	RGB    beercolor.RGB
	Hex    string
}

// NewEntry renders a single rating.
func NewEntry(scale beercolor.Scale, value, pathCm float64) Entry {
	rgb := scale.ToSRGB(value, pathCm)
	return Entry{
		Scale:  scale,
		Value:  value,
		PathCm: pathCm,
		RGB:    rgb,
		Hex:    rgb.Hex(),
	}
}

// Range is an inclusive range of ratings.
type Range struct {
	From float64
	To   float64
	Step float64
}

// DefaultRange matches the SRM 1..40 table of the BJCP color guide.
var DefaultRange = Range{From: 1, To: 40, Step: 1}

// Validate checks that the range is finite, ordered and not too large.
func (r Range) Validate() error {
	for _, v := range []float64{r.From, r.To, r.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("range values must be finite")
		}
	}
	if r.Step <= 0 {
		return fmt.Errorf("step must be positive")
	}
	if r.From > r.To {
		return fmt.Errorf("from (%g) must not exceed to (%g)", r.From, r.To)
	}
	// Compared as float so huge or infinite spans never reach an int conversion.
	if n := r.steps() + 1; !(n <= MaxEntries) {
		return fmt.Errorf("range yields %g entries, maximum is %d", math.Floor(n), MaxEntries)
	}
	return nil
}

// steps returns the number of whole steps between From and To. A small
// tolerance keeps ranges like 0..1 step 0.1 inclusive of their upper bound.
func (r Range) steps() float64 {
	return math.Floor((r.To-r.From)/r.Step + 1e-9)
}

// Len returns the number of values in the range. Ranges that fail Validate
// report at most MaxEntries+1.
func (r Range) Len() int {
	n := r.steps()
	switch {
	case !(n >= 0):
		return 0
	case n >= MaxEntries:
		return MaxEntries + 1
	}
	return int(n) + 1
}

// Values returns From + i*Step for every i in the range.
func (r Range) Values() []float64 {
	n := r.Len()
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = r.From + float64(i)*r.Step
	}
	return values
}

// Build renders every rating in r.
func Build(scale beercolor.Scale, r Range, pathCm float64) ([]Entry, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	values := r.Values()
	entries := make([]Entry, len(values))
	for i, v := range values {
		entries[i] = NewEntry(scale, v, pathCm)
	}
	return entries, nil
}

// Format is an output encoding for palettes.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat accepts "csv" or "json".
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("invalid format %q: must be 'csv' or 'json'", s)
}

// Write encodes entries in the given format.
func Write(w io.Writer, f Format, entries []Entry) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, entries)
	case FormatJSON:
		return WriteJSON(w, entries)
	}
	return fmt.Errorf("unsupported format %q", f)
}

// FormatValue renders a rating without trailing zeros ("20", "12.5").
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteCSV writes a "SRM,sRGB" header followed by one "value,#rrggbb" row per entry.
func WriteCSV(w io.Writer, entries []Entry) error {
	scale := beercolor.SRM
	if len(entries) > 0 {
		scale = entries[0].Scale
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{scale.String(), "sRGB"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write([]string{FormatValue(e.Value), e.Hex}); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONEntry is the wire form of an Entry.
type JSONEntry struct {
	Scale  string  `json:"scale"`
	Value  float64 `json:"value"`
	PathCm float64 `json:"path_cm"`
	R      float64 `json:"r"`
	G      float64 `json:"g"`
	B      float64 `json:"b"`
	Hex    string  `json:"hex"`
}

// JSON converts the entry to its wire form.
func (e Entry) JSON() JSONEntry {
	return JSONEntry{
		Scale:  strings.ToLower(e.Scale.String()),
		Value:  e.Value,
		PathCm: e.PathCm,
		R:      e.RGB.R,
		G:      e.RGB.G,
		B:      e.RGB.B,
		Hex:    e.Hex,
	}
}

// WriteJSON writes entries as an indented JSON array.
func WriteJSON(w io.Writer, entries []Entry) error {
	out := make([]JSONEntry, len(entries))
	for i, e := range entries {
		out[i] = e.JSON()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode palette: %w", err)
	}
	return nil
}
