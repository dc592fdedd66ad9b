package helpers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ============================================================================
// CSV HELPER — Raw bytes → header-addressed rows
// ============================================================================
// The consumer reads the CSV from wherever it lives (disk or the single HTTP
// fetch); this helper converts the bytes into rows addressable by column
// name. No interpretation happens here — classification and normalization
// belong to schema and engine.
// ============================================================================

// Row maps column name to the raw cell value. Columns absent from a row are
// absent keys.
type Row = map[string]string

// Table is a parsed CSV file: the ordered header row plus all data rows.
type Table struct {
	Headers []string
	Rows    []Row
}

// ParseCSV parses CSV bytes into a Table using header-based field access.
// Rows with a wrong field count are skipped; any other parse error aborts
// the load with that error surfaced.
func ParseCSV(data []byte) (*Table, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("CSV is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	table := &Table{Headers: headers}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV parse error: %w", err)
		}
		if len(record) != len(headers) {
			continue // ragged row
		}
		row := make(Row, len(headers))
		for i, val := range record {
			row[headers[i]] = val
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
