package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// PropertyColumnPrefix marks CSV columns that map to entity properties,
// e.g. "prop.qualifiedName".
const PropertyColumnPrefix = "prop."

// CSVParser parses entities from CSV format.
type CSVParser struct{}

// Parse reads CSV from the reader and returns parsed entities.
// Expected columns: type, name, urn, id, description, platform, env, parent, prop.*
func (p *CSVParser) Parse(r io.Reader) ([]RawEntity, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, colIndex)
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.TrimSpace(col)] = i
	}

	requiredCols := []string{"type", "name"}
	for _, col := range requiredCols {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	return colIndex, nil
}

// readRecords reads all data rows and converts them to RawEntities.
func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) ([]RawEntity, error) {
	var records []RawEntity
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		records = append(records, p.parseRecord(record, colIndex, lineNum))
	}

	return records, nil
}

// parseRecord converts a CSV record to a RawEntity.
func (p *CSVParser) parseRecord(record []string, colIndex map[string]int, lineNum int) RawEntity {
	raw := RawEntity{
		URN:         getColumn(record, colIndex, "urn"),
		ID:          getColumn(record, colIndex, "id"),
		Type:        getColumn(record, colIndex, "type"),
		Name:        getColumn(record, colIndex, "name"),
		Description: getColumn(record, colIndex, "description"),
		Platform:    getColumn(record, colIndex, "platform"),
		Env:         getColumn(record, colIndex, "env"),
		Parent:      getColumn(record, colIndex, "parent"),
		LineNum:     lineNum,
	}

	for col := range colIndex {
		key, ok := strings.CutPrefix(col, PropertyColumnPrefix)
		if !ok || key == "" {
			continue
		}
		if v := getColumn(record, colIndex, col); v != "" {
			if raw.Properties == nil {
				raw.Properties = make(map[string]string)
			}
			raw.Properties[key] = v
		}
	}

	return raw
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return record[idx]
	}
	return ""
}
