package core

import (
	"testing"
)

func loadTable(t *testing.T, headers []string, rows []map[string]string) *RecipientTable {
	t.Helper()
	table := NewRecipientTable()
	if err := table.Load(headers, rows); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return table
}

func TestReconcile_EndToEnd(t *testing.T) {
	table := loadTable(t,
		[]string{"Name", "Email"},
		[]map[string]string{
			{"Name": "Jane Doe", "Email": "jane@x.com"},
			{"Name": "Bob", "Email": "bob@x.com"},
		},
	)
	mapping := ColumnMapping{RecipientColumn: "Email", NameColumn: "Name"}

	idx := NewAttachmentIndex()
	idx.Ingest([]File{
		memFile{name: "jane doe.pdf", data: "x", size: 1_258_291}, // 1.2 MiB
		memFile{name: "carol.png", data: "y"},
	}, map[string]string{"jane doe.pdf": "application/pdf"})

	res := Reconcile(table, idx, mapping)

	if res.Total != 2 || res.Matched != 1 || res.Unmatched != 1 {
		t.Fatalf("counts = total %d matched %d unmatched %d, want 2/1/1", res.Total, res.Matched, res.Unmatched)
	}
	if len(res.UnmatchedFiles) != 1 || res.UnmatchedFiles[0] != "carol.png" {
		t.Errorf("UnmatchedFiles = %v, want [carol.png]", res.UnmatchedFiles)
	}
	if len(res.Matches) != 1 {
		t.Fatalf("Matches = %v, want one pair", res.Matches)
	}
	if res.Matches[0].Name != "Jane Doe" {
		t.Errorf("match name = %q, want original display name %q", res.Matches[0].Name, "Jane Doe")
	}
	if len(res.Matches[0].Files) != 1 || res.Matches[0].Files[0] != "jane doe.pdf" {
		t.Errorf("match files = %v, want [jane doe.pdf]", res.Matches[0].Files)
	}

	policy := DeriveBatchPolicy(idx)
	if !policy.SingleRecipient {
		t.Errorf("policy.SingleRecipient = false, want restriction for mid-size PDF")
	}
}

func TestReconcile_BlankNameNeverMatchesWhitespaceStem(t *testing.T) {
	table := loadTable(t,
		[]string{"Name", "Email"},
		[]map[string]string{
			{"Name": "", "Email": "noname@x.com"},
		},
	)
	mapping := ColumnMapping{RecipientColumn: "Email", NameColumn: "Name"}

	idx := NewAttachmentIndex()
	idx.Ingest([]File{memFile{name: " .pdf", data: "x"}}, nil)

	res := Reconcile(table, idx, mapping)

	if res.Matched != 0 {
		t.Fatalf("Matched = %d, blank name cell must not claim the file", res.Matched)
	}
	if res.Unmatched != 1 || len(res.UnmatchedFiles) != 1 || res.UnmatchedFiles[0] != " .pdf" {
		t.Errorf("unmatched = %d files %v, want the file reported unmatched", res.Unmatched, res.UnmatchedFiles)
	}
}

func TestReconcile_Conservation(t *testing.T) {
	// matched + unmatched == total, and unmatched equals the filename
	// list length, for a spread of table/index shapes.
	tests := []struct {
		name  string
		rows  []map[string]string
		files []string
	}{
		{
			name:  "empty table, some files",
			rows:  nil,
			files: []string{"a.pdf", "b.png"},
		},
		{
			name:  "all matched",
			rows:  []map[string]string{{"Name": "A"}, {"Name": "B"}},
			files: []string{"a.pdf", "b.pdf"},
		},
		{
			name:  "mixed",
			rows:  []map[string]string{{"Name": "A"}},
			files: []string{"a.pdf", "a.png", "stray.txt"},
		},
		{
			name:  "no files",
			rows:  []map[string]string{{"Name": "A"}},
			files: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := loadTable(t, []string{"Name"}, tt.rows)
			idx := NewAttachmentIndex()
			for _, f := range tt.files {
				idx.Ingest([]File{memFile{name: f, data: "x"}}, nil)
			}

			res := Reconcile(table, idx, ColumnMapping{RecipientColumn: "Name", NameColumn: "Name"})

			if res.Matched+res.Unmatched != res.Total {
				t.Errorf("matched %d + unmatched %d != total %d", res.Matched, res.Unmatched, res.Total)
			}
			if res.Unmatched != len(res.UnmatchedFiles) {
				t.Errorf("Unmatched = %d but %d unmatched filenames collected", res.Unmatched, len(res.UnmatchedFiles))
			}
		})
	}
}

func TestReconcile_MultipleFilesPerPerson(t *testing.T) {
	table := loadTable(t,
		[]string{"Name", "Email"},
		[]map[string]string{{"Name": "Jane Doe", "Email": "jane@x.com"}},
	)
	mapping := ColumnMapping{RecipientColumn: "Email", NameColumn: "Name"}

	idx := NewAttachmentIndex()
	idx.Ingest([]File{
		memFile{name: "Jane Doe.pdf", data: "x"},
		memFile{name: "jane   doe.png", data: "y"},
	}, nil)

	res := Reconcile(table, idx, mapping)

	if res.Matched != 2 {
		t.Errorf("Matched = %d, want 2", res.Matched)
	}
	if len(res.Matches) != 1 {
		t.Fatalf("Matches = %v, want single pair with both files", res.Matches)
	}
	if len(res.Matches[0].Files) != 2 {
		t.Errorf("pair files = %v, want both filenames", res.Matches[0].Files)
	}
}

func TestReconcile_DuplicateNamesShareBucket(t *testing.T) {
	table := loadTable(t,
		[]string{"Name", "Email"},
		[]map[string]string{
			{"Name": "Jane Doe", "Email": "jane1@x.com"},
			{"Name": "JANE DOE", "Email": "jane2@x.com"},
		},
	)
	mapping := ColumnMapping{RecipientColumn: "Email", NameColumn: "Name"}

	idx := NewAttachmentIndex()
	idx.Ingest([]File{memFile{name: "jane doe.pdf", data: "x"}}, nil)

	res := Reconcile(table, idx, mapping)

	// Duplicate normalized names collapse to one match pair; the first
	// occurrence in row order supplies the display name.
	if len(res.Matches) != 1 {
		t.Fatalf("Matches = %v, want one pair", res.Matches)
	}
	if res.Matches[0].Name != "Jane Doe" {
		t.Errorf("tie-break name = %q, want first-row %q", res.Matches[0].Name, "Jane Doe")
	}

	// Both rows receive the bucket in the per-recipient plan.
	plans := AssignAttachments(table, idx, mapping)
	if len(plans) != 2 {
		t.Fatalf("plans = %d, want 2", len(plans))
	}
	for i, p := range plans {
		if len(p.Attachments) != 1 {
			t.Errorf("plan %d attachments = %d, want shared bucket", i, len(p.Attachments))
		}
	}
}

func TestAssignAttachments_RowOrderAndFields(t *testing.T) {
	table := loadTable(t,
		[]string{"Name", "Email", "Subject"},
		[]map[string]string{
			{"Name": "Jane Doe", "Email": "jane@x.com", "Subject": "Hello Jane"},
			{"Name": "Bob", "Email": "bob@x.com", "Subject": "Hello Bob"},
		},
	)
	mapping := ColumnMapping{RecipientColumn: "Email", NameColumn: "Name", SubjectColumn: "Subject"}

	idx := NewAttachmentIndex()
	idx.Ingest([]File{memFile{name: "bob.pdf", data: "x"}}, nil)

	plans := AssignAttachments(table, idx, mapping)

	if len(plans) != 2 {
		t.Fatalf("plans = %d, want 2", len(plans))
	}
	if plans[0].Address != "jane@x.com" || plans[1].Address != "bob@x.com" {
		t.Errorf("plan order = [%s %s], want table row order", plans[0].Address, plans[1].Address)
	}
	if len(plans[0].Attachments) != 0 {
		t.Errorf("Jane has %d attachments, want 0", len(plans[0].Attachments))
	}
	if len(plans[1].Attachments) != 1 {
		t.Errorf("Bob has %d attachments, want 1", len(plans[1].Attachments))
	}
	if plans[1].Subject != "Hello Bob" {
		t.Errorf("Subject = %q", plans[1].Subject)
	}
}
