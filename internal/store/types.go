// Package store persists rendered palettes in a SQLite database.
package store

import (
	"errors"
	"strconv"
)

// ErrNotFound is returned when a color is not in the database.
var ErrNotFound = errors.New("color not found")

// Metadata describes a palette database.
type Metadata struct {
	Name        string
	Description string
	Version     string
	Scale       string
	PathCm      float64
	Count       int
}

// ToMap converts Metadata to a map for database insertion.
func (m Metadata) ToMap() map[string]string {
	result := make(map[string]string)

	if m.Name != "" {
		result["name"] = m.Name
	}
	if m.Description != "" {
		result["description"] = m.Description
	}
	if m.Version != "" {
		result["version"] = m.Version
	}
	if m.Scale != "" {
		result["scale"] = m.Scale
	}
	if m.PathCm > 0 {
		result["path_cm"] = strconv.FormatFloat(m.PathCm, 'f', -1, 64)
	}
	if m.Count > 0 {
		result["count"] = strconv.Itoa(m.Count)
	}

	return result
}

// metadataFromMap is the inverse of ToMap. Unparseable numbers are ignored.
func metadataFromMap(values map[string]string) Metadata {
	m := Metadata{
		Name:        values["name"],
		Description: values["description"],
		Version:     values["version"],
		Scale:       values["scale"],
	}
	if v, err := strconv.ParseFloat(values["path_cm"], 64); err == nil {
		m.PathCm = v
	}
	if v, err := strconv.Atoi(values["count"]); err == nil {
		m.Count = v
	}
	return m
}

// Row is one stored color.
type Row struct {
	Scale  string
	Value  float64
	PathCm float64
	R      float64
	G      float64
	B      float64
	Hex    string
	// Swatch is optional PNG data.
	Swatch []byte
}
