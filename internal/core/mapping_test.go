package core

import (
	"errors"
	"testing"
)

func TestResolveMapping(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    ColumnMapping
	}{
		{
			name:    "standard email and name headers",
			headers: []string{"Name", "Email", "Subject"},
			want:    ColumnMapping{RecipientColumn: "Email", NameColumn: "Name", SubjectColumn: "Subject"},
		},
		{
			name:    "case insensitive matching",
			headers: []string{"FULL NAME", "E-MAIL"},
			want:    ColumnMapping{RecipientColumn: "E-MAIL", NameColumn: "FULL NAME"},
		},
		{
			name:    "to and title variants",
			headers: []string{"To", "First Name", "Title"},
			want:    ColumnMapping{RecipientColumn: "To", NameColumn: "First Name", SubjectColumn: "Title"},
		},
		{
			name:    "underscore separator variant",
			headers: []string{"first_name", "address"},
			want:    ColumnMapping{RecipientColumn: "address", NameColumn: "first_name"},
		},
		{
			name:    "no matches fall back to first header except subject",
			headers: []string{"Col A", "Col B"},
			want:    ColumnMapping{RecipientColumn: "Col A", NameColumn: "Col A"},
		},
		{
			name:    "first matching header wins",
			headers: []string{"Recipient", "Email"},
			want:    ColumnMapping{RecipientColumn: "Recipient", NameColumn: "Recipient"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveMapping(tt.headers, nil)
			if got != tt.want {
				t.Errorf("ResolveMapping(%v) = %+v, want %+v", tt.headers, got, tt.want)
			}
		})
	}
}

func TestResolveMapping_PreservesPreviousChoice(t *testing.T) {
	headers := []string{"Name", "Email", "Backup Email"}
	prev := &ColumnMapping{RecipientColumn: "Backup Email", NameColumn: "Name"}

	got := ResolveMapping(headers, prev)

	if got.RecipientColumn != "Backup Email" {
		t.Errorf("RecipientColumn = %q, want previous choice %q preserved", got.RecipientColumn, "Backup Email")
	}
	if got.NameColumn != "Name" {
		t.Errorf("NameColumn = %q, want %q", got.NameColumn, "Name")
	}
}

func TestResolveMapping_DropsStalePreviousChoice(t *testing.T) {
	headers := []string{"Name", "Email"}
	prev := &ColumnMapping{RecipientColumn: "Old Column", NameColumn: "Old Name", SubjectColumn: "Old Subject"}

	got := ResolveMapping(headers, prev)

	if got.RecipientColumn != "Email" {
		t.Errorf("RecipientColumn = %q, want re-inferred %q", got.RecipientColumn, "Email")
	}
	if got.NameColumn != "Name" {
		t.Errorf("NameColumn = %q, want re-inferred %q", got.NameColumn, "Name")
	}
	if got.SubjectColumn != "" {
		t.Errorf("SubjectColumn = %q, want absent", got.SubjectColumn)
	}
}

func TestColumnMapping_Validate(t *testing.T) {
	headers := []string{"Name", "Email", "Subject"}

	tests := []struct {
		name    string
		mapping ColumnMapping
		wantErr bool
	}{
		{
			name:    "all columns exist",
			mapping: ColumnMapping{RecipientColumn: "Email", NameColumn: "Name", SubjectColumn: "Subject"},
			wantErr: false,
		},
		{
			name:    "subject optional",
			mapping: ColumnMapping{RecipientColumn: "Email", NameColumn: "Name"},
			wantErr: false,
		},
		{
			name:    "unknown recipient column",
			mapping: ColumnMapping{RecipientColumn: "Phone", NameColumn: "Name"},
			wantErr: true,
		},
		{
			name:    "empty name column",
			mapping: ColumnMapping{RecipientColumn: "Email", NameColumn: ""},
			wantErr: true,
		},
		{
			name:    "unknown subject column",
			mapping: ColumnMapping{RecipientColumn: "Email", NameColumn: "Name", SubjectColumn: "Topic"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mapping.Validate(headers)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidMapping) {
				t.Errorf("error %v is not ErrInvalidMapping", err)
			}
		})
	}
}

func TestColumnMapping_Apply(t *testing.T) {
	headers := []string{"Name", "Email", "Subject"}
	base := ColumnMapping{RecipientColumn: "Email", NameColumn: "Name", SubjectColumn: "Subject"}

	t.Run("single field edit leaves others untouched", func(t *testing.T) {
		name := "Email" // deliberately remap name onto the email column
		got, err := base.Apply(MappingUpdate{Name: &name}, headers)
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if got.NameColumn != "Email" {
			t.Errorf("NameColumn = %q, want %q", got.NameColumn, "Email")
		}
		if got.RecipientColumn != base.RecipientColumn || got.SubjectColumn != base.SubjectColumn {
			t.Errorf("other fields disturbed: %+v", got)
		}
	})

	t.Run("invalid edit rejected, mapping unchanged", func(t *testing.T) {
		bad := "Phone"
		got, err := base.Apply(MappingUpdate{Recipient: &bad}, headers)
		if !errors.Is(err, ErrInvalidMapping) {
			t.Fatalf("Apply() error = %v, want ErrInvalidMapping", err)
		}
		if got != base {
			t.Errorf("mapping changed on failed edit: %+v", got)
		}
	})

	t.Run("subject can be cleared", func(t *testing.T) {
		empty := ""
		got, err := base.Apply(MappingUpdate{Subject: &empty}, headers)
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if got.SubjectColumn != "" {
			t.Errorf("SubjectColumn = %q, want cleared", got.SubjectColumn)
		}
	})
}
