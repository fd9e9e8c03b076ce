package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses entities from a JSON array.
type JSONParser struct{}

// Parse reads JSON from the reader and returns parsed entities.
func (p *JSONParser) Parse(r io.Reader) ([]RawEntity, error) {
	var records []RawEntity

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	// Set line numbers (array index + 1, 1-indexed)
	for i := range records {
		records[i].LineNum = i + 1
	}

	return records, nil
}
