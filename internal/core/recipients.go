package core

import (
	"fmt"
	"strings"
)

// RecipientRecord is one row of the recipient table. Values keeps every
// column of the source row, mapped or not, so unmapped columns survive a
// round-trip through the engine. A record always carries the table's full
// header set; missing cells are empty strings, never absent keys.
type RecipientRecord struct {
	Values map[string]string `json:"values"`
}

// Address returns the record's value in the mapped recipient column.
func (r RecipientRecord) Address(m ColumnMapping) string {
	return r.Values[m.RecipientColumn]
}

// DisplayName returns the record's value in the mapped name column.
func (r RecipientRecord) DisplayName(m ColumnMapping) string {
	return r.Values[m.NameColumn]
}

// Subject returns the record's value in the mapped subject column, or ""
// when no subject column is mapped.
func (r RecipientRecord) Subject(m ColumnMapping) string {
	if m.SubjectColumn == "" {
		return ""
	}
	return r.Values[m.SubjectColumn]
}

// RecipientTable is the ordered collection of recipient records. Row order
// is insertion order; it drives display order and send order downstream and
// is never silently reordered.
type RecipientTable struct {
	headers []string
	records []RecipientRecord
}

// NewRecipientTable returns an empty, unloaded table.
func NewRecipientTable() *RecipientTable {
	return &RecipientTable{}
}

// Load replaces the table wholesale with ingested headers and rows.
// Fails with ErrNoHeaders when the source declared zero columns; the prior
// table state is left untouched in that case. Cells for headers missing
// from a source row are filled with empty strings.
func (t *RecipientTable) Load(headers []string, rows []map[string]string) error {
	if len(headers) == 0 {
		return fmt.Errorf("load table: %w", ErrNoHeaders)
	}

	records := make([]RecipientRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, recordFromRow(headers, row))
	}

	t.headers = append([]string(nil), headers...)
	t.records = records
	return nil
}

// InitializeManual creates an empty table with caller-supplied default
// headers, enabling manual data entry before any upload. Fails with
// ErrNoHeaders when defaultHeaders is empty.
func (t *RecipientTable) InitializeManual(defaultHeaders []string) error {
	if len(defaultHeaders) == 0 {
		return fmt.Errorf("initialize manual table: %w", ErrNoHeaders)
	}
	t.headers = append([]string(nil), defaultHeaders...)
	t.records = nil
	return nil
}

// AppendRow appends one manually entered row. The value for the currently
// mapped recipient column must be non-empty after trimming; otherwise the
// append fails with ErrMissingRecipient and the table is unchanged.
func (t *RecipientTable) AppendRow(values map[string]string, m ColumnMapping) error {
	if len(t.headers) == 0 {
		return fmt.Errorf("append row: %w", ErrNoTable)
	}
	if strings.TrimSpace(values[m.RecipientColumn]) == "" {
		return fmt.Errorf("append row: column %q: %w", m.RecipientColumn, ErrMissingRecipient)
	}
	t.records = append(t.records, recordFromRow(t.headers, values))
	return nil
}

// DeleteRow removes exactly one record by position. Later records shift
// down; positions are not stable identifiers beyond the current view.
func (t *RecipientTable) DeleteRow(index int) error {
	if index < 0 || index >= len(t.records) {
		return fmt.Errorf("delete row %d of %d: %w", index, len(t.records), ErrRowIndex)
	}
	t.records = append(t.records[:index], t.records[index+1:]...)
	return nil
}

// Headers returns the table's header list in column order.
func (t *RecipientTable) Headers() []string {
	return t.headers
}

// Records returns the records in insertion order.
func (t *RecipientTable) Records() []RecipientRecord {
	return t.records
}

// Len returns the number of rows.
func (t *RecipientTable) Len() int {
	return len(t.records)
}

// Loaded reports whether the table has a header set, either from an upload
// or from manual initialization.
func (t *RecipientTable) Loaded() bool {
	return len(t.headers) > 0
}

func recordFromRow(headers []string, row map[string]string) RecipientRecord {
	values := make(map[string]string, len(headers))
	for _, h := range headers {
		values[h] = row[h]
	}
	return RecipientRecord{Values: values}
}
