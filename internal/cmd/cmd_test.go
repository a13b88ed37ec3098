package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/MeKo-Tech/beercolor/internal/palette"
	"github.com/MeKo-Tech/beercolor/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValues(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []float64
		wantErr bool
	}{
		{
			name:  "single value",
			input: []string{"20"},
			want:  []float64{20},
		},
		{
			name:  "separate args",
			input: []string{"1", "12.5"},
			want:  []float64{1, 12.5},
		},
		{
			name:  "comma separated with spaces",
			input: []string{"4, 12,20"},
			want:  []float64{4, 12, 20},
		},
		{
			name:  "zero is allowed",
			input: []string{"0"},
			want:  []float64{0},
		},
		{
			name:    "negative value",
			input:   []string{"-1"},
			wantErr: true,
		},
		{
			name:    "invalid number",
			input:   []string{"abc"},
			wantErr: true,
		},
		{
			name:    "not a number",
			input:   []string{"NaN"},
			wantErr: true,
		},
		{
			name:    "infinite",
			input:   []string{"+Inf"},
			wantErr: true,
		},
		{
			name:    "only separators",
			input:   []string{",,"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseValues(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseValues(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("parseValues(%q) unexpected error: %v", tt.input, err)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

// run executes the root command. Flags keep their values between runs, so
// every test passes the options it depends on explicitly.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConvertText(t *testing.T) {
	out, err := run(t, "convert", "20", "--scale", "srm", "--path", "5", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "20\t#7d1900\t")
}

func TestConvertEBCJSON(t *testing.T) {
	out, err := run(t, "convert", "10,40", "--scale", "ebc", "--path", "5", "--format", "json")
	require.NoError(t, err)

	var got []palette.JSONEntry
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "ebc", got[0].Scale)
	assert.Equal(t, "#df9800", got[0].Hex)
	assert.Equal(t, "#7b1700", got[1].Hex)
}

func TestConvertRejectsBadInput(t *testing.T) {
	_, err := run(t, "convert", "-5", "--scale", "srm", "--path", "5", "--format", "text")
	assert.Error(t, err)

	_, err = run(t, "convert", "5", "--scale", "lovibond", "--path", "5", "--format", "text")
	assert.Error(t, err)

	_, err = run(t, "convert", "5", "--scale", "srm", "--path", "0", "--format", "text")
	assert.Error(t, err)

	_, err = run(t, "convert", "5", "--scale", "srm", "--path", "5", "--format", "xml")
	assert.Error(t, err)
}

func TestTableCSV(t *testing.T) {
	out, err := run(t, "table", "--scale", "srm", "--path", "5",
		"--from", "1", "--to", "3", "--step", "1", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "SRM,sRGB\n1,#fae8b6\n2,#f4d180\n3,#eebd55\n", out)
}

func TestTableInvalidRange(t *testing.T) {
	_, err := run(t, "table", "--scale", "srm", "--path", "5",
		"--from", "10", "--to", "1", "--step", "1", "--format", "csv")
	assert.Error(t, err)

	_, err = run(t, "table", "--scale", "srm", "--path", "5",
		"--from", "1", "--to", "10", "--step", "0", "--format", "csv")
	assert.Error(t, err)
}

func TestTableRejectsHugeRange(t *testing.T) {
	_, err := run(t, "table", "--scale", "srm", "--path", "5",
		"--from", "0", "--to", "1e19", "--step", "1", "--format", "csv")
	assert.Error(t, err)
}

func TestRenderSwatches(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "render", "--scale", "srm", "--path", "5", "--output-dir", dir,
		"--from", "1", "--to", "3", "--step", "1",
		"--kind", "swatch", "--size", "8", "--workers", "2",
		"--progress=false", "--force=false", "--allow-failures=false",
		"--png-compression", "speed")
	require.NoError(t, err)

	for _, name := range []string{"srm_1_5cm.png", "srm_2_5cm.png", "srm_3_5cm.png"} {
		_, err := os.Stat(filepath.Join(dir, "swatch", name))
		assert.NoError(t, err, name)
	}
}

func TestChartWritesPNG(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "chart.png")
	_, err := run(t, "chart", "--scale", "srm", "--path", "5", "--output-dir", dir,
		"--from", "1", "--to", "4", "--step", "1",
		"--out", out, "--columns", "2", "--cell-width", "32", "--cell-height", "24",
		"--gap", "2", "--labels=false", "--png-compression", "default")
	require.NoError(t, err)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportSQLite(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "palette.db")
	_, err := run(t, "export", "--scale", "srm", "--path", "5", "--output-dir", dir,
		"--from", "1", "--to", "5", "--step", "1",
		"--out", db, "--swatches", "--swatch-size", "4", "--name", "")
	require.NoError(t, err)

	r, err := store.OpenReader(db)
	require.NoError(t, err)
	defer r.Close()

	count, err := r.Count()
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	row, err := r.ReadColor("srm", 5, 5)
	require.NoError(t, err)
	assert.Equal(t, "#e09a03", row.Hex)

	swatch, err := r.ReadSwatch("srm", 5, 5)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), swatch[:4])

	meta, err := r.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "SRM 1-5", meta.Name)
	assert.Equal(t, 5, meta.Count)
}
