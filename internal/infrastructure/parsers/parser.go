// Package parsers provides parsers for importing catalog entities from various formats.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawEntity represents an entity parsed from an external source before validation.
type RawEntity struct {
	URN         string            `json:"urn,omitempty"` // Full URN; wins over a derived one
	ID          string            `json:"id,omitempty"`
	Type        string            `json:"type"` // Type name or URL path name
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Platform    string            `json:"platform,omitempty"`
	Env         string            `json:"env,omitempty"`
	Parent      string            `json:"parent,omitempty"` // Parent URN
	Properties  map[string]string `json:"properties,omitempty"`
	LineNum     int               `json:"-"` // Line number in source file (set by parser)
}

// Parser defines the interface for parsing entities from various formats.
type Parser interface {
	Parse(r io.Reader) ([]RawEntity, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	return ForFormat(strings.TrimPrefix(filepath.Ext(filename), "."))
}
