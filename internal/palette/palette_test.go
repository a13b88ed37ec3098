package palette

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/MeKo-Tech/beercolor/beercolor"
)

func TestRangeValues(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		want []float64
	}{
		{"integers", Range{From: 1, To: 5, Step: 1}, []float64{1, 2, 3, 4, 5}},
		{"single value", Range{From: 20, To: 20, Step: 1}, []float64{20}},
		{"fractional step includes upper bound", Range{From: 0, To: 1, Step: 0.25}, []float64{0, 0.25, 0.5, 0.75, 1}},
		{"step overshoots", Range{From: 1, To: 4, Step: 2}, []float64{1, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.r.Values()
			if len(got) != len(tt.want) {
				t.Fatalf("Values() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Values()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}

	if n := (Range{From: 0, To: 1, Step: 0.1}).Len(); n != 11 {
		t.Errorf("0..1 step 0.1 has %d values, want 11", n)
	}
}

func TestRangeValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       Range
		wantErr bool
	}{
		{"default", DefaultRange, false},
		{"zero step", Range{From: 1, To: 2, Step: 0}, true},
		{"negative step", Range{From: 1, To: 2, Step: -1}, true},
		{"reversed", Range{From: 5, To: 1, Step: 1}, true},
		{"too many", Range{From: 0, To: 1e6, Step: 1}, true},
		{"exactly max entries", Range{From: 1, To: MaxEntries, Step: 1}, false},
		{"one over max entries", Range{From: 0, To: MaxEntries, Step: 1}, true},
		{"span beyond int64", Range{From: 0, To: 1e19, Step: 1}, true},
		{"infinite span", Range{From: -1e308, To: 1e308, Step: 1}, true},
		{"tiny step", Range{From: 0, To: 1, Step: 1e-300}, true},
		{"infinite to", Range{From: 0, To: math.Inf(1), Step: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("expected error for %+v", tt.r)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if n := tt.r.Len(); n < 0 || n > MaxEntries+1 {
				t.Errorf("Len() = %d, want within [0,%d]", n, MaxEntries+1)
			}
		})
	}
}

func TestBuildRejectsHugeRange(t *testing.T) {
	_, err := Build(beercolor.SRM, Range{From: 0, To: 1e19, Step: 1}, beercolor.DefaultPath)
	if err == nil {
		t.Fatal("expected error for a range beyond MaxEntries")
	}
}

func TestBuild(t *testing.T) {
	entries, err := Build(beercolor.SRM, DefaultRange, beercolor.DefaultPath)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(entries) != 40 {
		t.Fatalf("got %d entries, want 40", len(entries))
	}
	checks := map[int]string{0: "#fae8b6", 9: "#ba5b00", 19: "#7d1900", 39: "#390000"}
	for i, hex := range checks {
		if entries[i].Hex != hex {
			t.Errorf("SRM %v = %s, want %s", entries[i].Value, entries[i].Hex, hex)
		}
	}

	if _, err := Build(beercolor.SRM, Range{From: 1, To: 2}, 5); err == nil {
		t.Error("expected error for zero step")
	}
}

func TestWriteCSV(t *testing.T) {
	entries, err := Build(beercolor.SRM, Range{From: 1, To: 3, Step: 1}, beercolor.DefaultPath)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, FormatCSV, entries); err != nil {
		t.Fatal(err)
	}
	want := "SRM,sRGB\n1,#fae8b6\n2,#f4d180\n3,#eebd55\n"
	if buf.String() != want {
		t.Errorf("csv = %q, want %q", buf.String(), want)
	}
}

func TestWriteCSV_EBCHeader(t *testing.T) {
	entries, err := Build(beercolor.EBC, Range{From: 10, To: 10, Step: 1}, beercolor.DefaultPath)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, entries); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "EBC,sRGB\n10,#df9800") {
		t.Errorf("unexpected csv %q", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	entries := []Entry{NewEntry(beercolor.SRM, 20, 5)}
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, entries); err != nil {
		t.Fatal(err)
	}
	var got []JSONEntry
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 1 || got[0].Scale != "srm" || got[0].Hex != "#7d1900" || got[0].PathCm != 5 {
		t.Errorf("unexpected json entries %+v", got)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("CSV"); err != nil || f != FormatCSV {
		t.Errorf("ParseFormat(CSV) = %q, %v", f, err)
	}
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(json) = %q, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestFormatValue(t *testing.T) {
	for in, want := range map[float64]string{20: "20", 12.5: "12.5", 0.25: "0.25"} {
		if got := FormatValue(in); got != want {
			t.Errorf("FormatValue(%v) = %q, want %q", in, got, want)
		}
	}
}
