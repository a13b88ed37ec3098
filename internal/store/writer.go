package store

import (
	"bytes"
	"compress/gzip"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/MeKo-Tech/beercolor/internal/palette"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	// DefaultBatchSize is the number of rows to buffer before flushing to the database.
	DefaultBatchSize = 100
)

// Writer writes colors to a palette database.
type Writer struct {
	db        *sql.DB
	path      string
	batch     []Row
	metadata  Metadata
	batchSize int
	mu        sync.Mutex
}

// New creates a new palette writer.
// The database is created if it doesn't exist, and the schema is initialized.
func New(path string, metadata Metadata) (*Writer, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	if err := insertMetadata(db, metadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to insert metadata: %w", err)
	}

	return &Writer{
		db:        db,
		path:      path,
		batch:     make([]Row, 0, DefaultBatchSize),
		batchSize: DefaultBatchSize,
		metadata:  metadata,
	}, nil
}

// createSchema creates the palette database schema.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS metadata (
			name TEXT NOT NULL,
			value TEXT
		);

		CREATE TABLE IF NOT EXISTS colors (
			scale TEXT NOT NULL,
			value REAL NOT NULL,
			path_cm REAL NOT NULL,
			r REAL NOT NULL,
			g REAL NOT NULL,
			b REAL NOT NULL,
			hex TEXT NOT NULL,
			swatch BLOB
		);

		CREATE UNIQUE INDEX IF NOT EXISTS color_index ON colors (scale, value, path_cm);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// insertMetadata replaces the metadata table contents.
func insertMetadata(db *sql.DB, meta Metadata) error {
	if _, err := db.Exec("DELETE FROM metadata"); err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}

	stmt, err := db.Prepare("INSERT INTO metadata (name, value) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare metadata insert: %w", err)
	}
	defer stmt.Close()

	for key, value := range meta.ToMap() {
		if _, err := stmt.Exec(key, value); err != nil {
			return fmt.Errorf("failed to insert metadata %q: %w", key, err)
		}
	}

	return nil
}

// WriteEntry stores a palette entry with an optional PNG swatch.
func (w *Writer) WriteEntry(e palette.Entry, swatch []byte) error {
	return w.WriteColor(Row{
		Scale:  strings.ToLower(e.Scale.String()),
		Value:  e.Value,
		PathCm: e.PathCm,
		R:      e.RGB.R,
		G:      e.RGB.G,
		B:      e.RGB.B,
		Hex:    e.Hex,
		Swatch: swatch,
	})
}

// WriteColor adds a row to the batch. When the batch is full, it is automatically flushed.
func (w *Writer) WriteColor(row Row) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.batch = append(w.batch, row)

	if len(w.batch) >= w.batchSize {
		return w.flushLocked()
	}

	return nil
}

// Flush writes any buffered rows to the database.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flushLocked()
}

// flushLocked writes buffered rows to the database. Must be called with lock held.
func (w *Writer) flushLocked() error {
	if len(w.batch) == 0 {
		return nil
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO colors (scale, value, path_cm, r, g, b, hex, swatch) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range w.batch {
		var swatch []byte
		if len(row.Swatch) > 0 {
			swatch, err = gzipCompress(row.Swatch)
			if err != nil {
				return fmt.Errorf("failed to compress swatch %s %g: %w", row.Scale, row.Value, err)
			}
		}

		if _, err := stmt.Exec(row.Scale, row.Value, row.PathCm, row.R, row.G, row.B, row.Hex, swatch); err != nil {
			return fmt.Errorf("failed to insert color %s %g: %w", row.Scale, row.Value, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	w.batch = w.batch[:0]
	return nil
}

// Close flushes any remaining rows and closes the database.
func (w *Writer) Close() error {
	if err := w.Flush(); err != nil {
		w.db.Close()
		return err
	}

	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

// gzipCompress compresses data with gzip.
func gzipCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)

	if _, err := gw.Write(data); err != nil {
		gw.Close()
		return nil, err
	}

	if err := gw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
