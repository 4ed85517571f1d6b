// Package ingest holds the external collaborators of the reconciliation
// engine: the tabular source that turns raw uploaded text into headers and
// rows, and the adapter that exposes multipart uploads through the engine's
// file capability contract. The engine itself never parses delimiters or
// touches multipart internals.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Table is the ingested form of a recipient upload: an ordered header list
// and rows as column-name → value maps. Cells missing from short rows are
// absent from the map; the recipient table fills them with empty strings.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// ParseTable reads a CSV document into a Table. The first non-empty record
// is the header row. Ragged rows are tolerated: short rows leave trailing
// cells empty, long rows have their extra cells dropped. Fully empty rows
// are skipped. Returns an error only when the input cannot be parsed as
// CSV at all.
func ParseTable(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("invalid csv: %w", err)
	}

	var t Table
	for _, record := range records {
		if emptyRecord(record) {
			continue
		}

		if t.Headers == nil {
			t.Headers = cleanHeaders(record)
			continue
		}

		row := make(map[string]string, len(t.Headers))
		for i, h := range t.Headers {
			if i < len(record) {
				row[h] = strings.TrimSpace(record[i])
			}
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// cleanHeaders trims whitespace and strips a UTF-8 BOM from the first cell,
// a common artifact of spreadsheet exports.
func cleanHeaders(record []string) []string {
	headers := make([]string, len(record))
	for i, h := range record {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		headers[i] = h
	}
	return headers
}

func emptyRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
