package ingest

import (
	"strings"
	"testing"
)

func TestParseTable(t *testing.T) {
	input := "Name,Email,Subject\n" +
		"Jane Doe,jane@x.com,Q3 report\n" +
		"Bob,bob@x.com\n" + // short row
		",,\n" + // fully empty row, skipped
		"Carol,carol@x.com,Hello,extra-cell\n"

	table, err := ParseTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}

	wantHeaders := []string{"Name", "Email", "Subject"}
	if len(table.Headers) != len(wantHeaders) {
		t.Fatalf("Headers = %v, want %v", table.Headers, wantHeaders)
	}
	for i, h := range wantHeaders {
		if table.Headers[i] != h {
			t.Errorf("Headers[%d] = %q, want %q", i, table.Headers[i], h)
		}
	}

	if len(table.Rows) != 3 {
		t.Fatalf("Rows = %d, want 3 (empty row skipped)", len(table.Rows))
	}

	if table.Rows[0]["Name"] != "Jane Doe" || table.Rows[0]["Subject"] != "Q3 report" {
		t.Errorf("row 0 = %v", table.Rows[0])
	}
	if _, ok := table.Rows[1]["Subject"]; ok {
		t.Errorf("short row should leave missing cell absent, got %v", table.Rows[1])
	}
	if table.Rows[2]["Name"] != "Carol" {
		t.Errorf("row 2 = %v; extra cells must be dropped, not shift columns", table.Rows[2])
	}
}

func TestParseTable_BOMStripped(t *testing.T) {
	input := "\uFEFFName,Email\nJane,jane@x.com\n"

	table, err := ParseTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}
	if table.Headers[0] != "Name" {
		t.Errorf("Headers[0] = %q, want BOM stripped", table.Headers[0])
	}
}

func TestParseTable_QuotedFields(t *testing.T) {
	input := "Name,Email\n\"Doe, Jane\",jane@x.com\n"

	table, err := ParseTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}
	if table.Rows[0]["Name"] != "Doe, Jane" {
		t.Errorf("quoted field = %q, want %q", table.Rows[0]["Name"], "Doe, Jane")
	}
}

func TestParseTable_EmptyInput(t *testing.T) {
	table, err := ParseTable(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}
	if table.Headers != nil || table.Rows != nil {
		t.Errorf("empty input produced %+v, want zero table", table)
	}
}
