package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/MeKo-Tech/beercolor/beercolor"
	"github.com/MeKo-Tech/beercolor/internal/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMetadata() Metadata {
	return Metadata{
		Name:        "BJCP SRM",
		Description: "SRM 1..40 at 5cm",
		Version:     "1.0",
		Scale:       "srm",
		PathCm:      5,
		Count:       40,
	}
}

func TestWriter_New(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "palette.db")

	w, err := New(dbPath, testMetadata())
	require.NoError(t, err)
	defer w.Close()

	_, err = os.Stat(dbPath)
	require.NoError(t, err, "database file was not created")

	var count int
	require.NoError(t, w.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='colors'").Scan(&count))
	assert.Equal(t, 1, count)

	require.NoError(t, w.db.QueryRow("SELECT COUNT(*) FROM metadata").Scan(&count))
	assert.Equal(t, len(testMetadata().ToMap()), count)
}

func TestWriter_BatchFlush(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "palette.db")

	w, err := New(dbPath, testMetadata())
	require.NoError(t, err)
	w.batchSize = 3

	entries, err := palette.Build(beercolor.SRM, palette.Range{From: 1, To: 4, Step: 1}, 5)
	require.NoError(t, err)
	for _, e := range entries {
		require.NoError(t, w.WriteEntry(e, nil))
	}

	var count int
	require.NoError(t, w.db.QueryRow("SELECT COUNT(*) FROM colors").Scan(&count))
	assert.Equal(t, 3, count, "full batch should flush automatically")
	assert.Len(t, w.batch, 1)

	require.NoError(t, w.Close())
}

func TestRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "palette.db")

	w, err := New(dbPath, testMetadata())
	require.NoError(t, err)

	entries, err := palette.Build(beercolor.SRM, palette.DefaultRange, beercolor.DefaultPath)
	require.NoError(t, err)
	swatch := []byte("\x89PNG fake swatch data")
	for _, e := range entries {
		require.NoError(t, w.WriteEntry(e, swatch))
	}
	// Rewriting an entry replaces it.
	require.NoError(t, w.WriteEntry(entries[0], nil))
	require.NoError(t, w.Close())

	r, err := OpenReader(dbPath)
	require.NoError(t, err)
	defer r.Close()

	n, err := r.Count()
	require.NoError(t, err)
	assert.Equal(t, 40, n)

	row, err := r.ReadColor("SRM", 20, 5)
	require.NoError(t, err)
	assert.Equal(t, "#7d1900", row.Hex)
	assert.InDelta(t, 0.4900981374387396, row.R, 1e-12)

	data, err := r.ReadSwatch("srm", 20, 5)
	require.NoError(t, err)
	assert.Equal(t, swatch, data)

	_, err = r.ReadSwatch("srm", 1, 5)
	assert.True(t, errors.Is(err, ErrNotFound), "replaced entry has no swatch")

	_, err = r.ReadColor("ebc", 20, 5)
	assert.ErrorIs(t, err, ErrNotFound)

	rows, err := r.Rows("srm")
	require.NoError(t, err)
	require.Len(t, rows, 40)
	assert.Equal(t, 1.0, rows[0].Value)
	assert.Equal(t, 40.0, rows[39].Value)

	meta, err := r.Metadata()
	require.NoError(t, err)
	assert.Equal(t, testMetadata(), meta)
}

func TestOpenReader_RejectsForeignDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")
	w, err := New(dbPath, Metadata{})
	require.NoError(t, err)
	_, err = w.db.Exec("DROP TABLE colors")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = OpenReader(dbPath)
	assert.Error(t, err)
}

func TestMetadataToMap(t *testing.T) {
	assert.Empty(t, Metadata{}.ToMap())

	m := testMetadata().ToMap()
	assert.Equal(t, "5", m["path_cm"])
	assert.Equal(t, "40", m["count"])
	assert.Equal(t, testMetadata(), metadataFromMap(m))
}
