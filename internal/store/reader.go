package store

import (
	"bytes"
	"compress/gzip"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Reader reads colors from a palette database.
type Reader struct {
	db   *sql.DB
	path string
}

// OpenReader opens a palette database for reading.
func OpenReader(path string) (*Reader, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro&immutable=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='colors'").Scan(&count)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to verify schema: %w", err)
	}
	if count == 0 {
		db.Close()
		return nil, fmt.Errorf("database does not contain colors table")
	}

	return &Reader{
		db:   db,
		path: path,
	}, nil
}

// ReadColor looks up a single color. Scale names are case-insensitive.
func (r *Reader) ReadColor(scale string, value, pathCm float64) (Row, error) {
	row := Row{}
	err := r.db.QueryRow(
		"SELECT scale, value, path_cm, r, g, b, hex FROM colors WHERE scale=? AND value=? AND path_cm=?",
		strings.ToLower(scale), value, pathCm,
	).Scan(&row.Scale, &row.Value, &row.PathCm, &row.R, &row.G, &row.B, &row.Hex)

	if errors.Is(err, sql.ErrNoRows) {
		return Row{}, fmt.Errorf("%w: %s %g @ %gcm", ErrNotFound, scale, value, pathCm)
	}
	if err != nil {
		return Row{}, fmt.Errorf("failed to query color: %w", err)
	}
	return row, nil
}

// ReadSwatch returns the decompressed PNG swatch stored for a color.
func (r *Reader) ReadSwatch(scale string, value, pathCm float64) ([]byte, error) {
	var compressed []byte
	err := r.db.QueryRow(
		"SELECT swatch FROM colors WHERE scale=? AND value=? AND path_cm=?",
		strings.ToLower(scale), value, pathCm,
	).Scan(&compressed)

	if errors.Is(err, sql.ErrNoRows) || (err == nil && len(compressed) == 0) {
		return nil, fmt.Errorf("%w: no swatch for %s %g @ %gcm", ErrNotFound, scale, value, pathCm)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query swatch: %w", err)
	}

	data, err := gzipDecompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress swatch: %w", err)
	}
	return data, nil
}

// Rows returns all colors of a scale ordered by path and value.
func (r *Reader) Rows(scale string) ([]Row, error) {
	rows, err := r.db.Query(
		"SELECT scale, value, path_cm, r, g, b, hex FROM colors WHERE scale=? ORDER BY path_cm, value",
		strings.ToLower(scale),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query colors: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.Scale, &row.Value, &row.PathCm, &row.R, &row.G, &row.B, &row.Hex); err != nil {
			return nil, fmt.Errorf("failed to scan color row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating colors: %w", err)
	}
	return out, nil
}

// Count returns the number of stored colors.
func (r *Reader) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM colors").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count colors: %w", err)
	}
	return n, nil
}

// Metadata reads metadata from the database.
func (r *Reader) Metadata() (Metadata, error) {
	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to query metadata: %w", err)
	}
	defer rows.Close()

	metaMap := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return Metadata{}, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		metaMap[name] = value
	}
	if err := rows.Err(); err != nil {
		return Metadata{}, fmt.Errorf("error iterating metadata: %w", err)
	}

	return metadataFromMap(metaMap), nil
}

// Close closes the database connection.
func (r *Reader) Close() error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// gzipDecompress decompresses gzip data.
func gzipDecompress(data []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gr.Close()

	return io.ReadAll(gr)
}
