package core

import (
	"fmt"
	"strings"
)

// ColumnMapping names the columns that supply the recipient address, the
// display name and the optional subject for each row. RecipientColumn and
// NameColumn are always set; SubjectColumn is empty when no subject column
// exists.
type ColumnMapping struct {
	RecipientColumn string `json:"recipientColumn"`
	NameColumn      string `json:"nameColumn"`
	SubjectColumn   string `json:"subjectColumn,omitempty"`
}

// Header pattern sets for mapping inference, matched case-insensitively
// against the whole header string.
var (
	recipientPatterns = []string{"email", "e-mail", "recipient", "to", "address"}
	namePatterns      = []string{"name", "full name", "full_name", "full-name", "first name", "first_name", "first-name"}
	subjectPatterns   = []string{"subject", "title", "headline", "topic"}
)

// ResolveMapping infers a column mapping from a header list.
//
// For each field the headers are scanned in order and the first one
// matching the field's pattern set wins. Recipient and name fall back to
// the first header; subject falls back to absent. When prev is non-nil its
// choices are kept for every field that still names an existing header, so
// re-rendering an unchanged table never disturbs an operator's selection.
func ResolveMapping(headers []string, prev *ColumnMapping) ColumnMapping {
	m := ColumnMapping{
		RecipientColumn: matchHeader(headers, recipientPatterns),
		NameColumn:      matchHeader(headers, namePatterns),
		SubjectColumn:   matchHeader(headers, subjectPatterns),
	}

	if len(headers) > 0 {
		if m.RecipientColumn == "" {
			m.RecipientColumn = headers[0]
		}
		if m.NameColumn == "" {
			m.NameColumn = headers[0]
		}
	}

	if prev != nil {
		if containsHeader(headers, prev.RecipientColumn) {
			m.RecipientColumn = prev.RecipientColumn
		}
		if containsHeader(headers, prev.NameColumn) {
			m.NameColumn = prev.NameColumn
		}
		if prev.SubjectColumn != "" && containsHeader(headers, prev.SubjectColumn) {
			m.SubjectColumn = prev.SubjectColumn
		}
	}

	return m
}

// Validate checks that every chosen column exists in headers. The subject
// column is optional and only checked when set.
func (m ColumnMapping) Validate(headers []string) error {
	if m.RecipientColumn == "" || !containsHeader(headers, m.RecipientColumn) {
		return fmt.Errorf("recipient column %q: %w", m.RecipientColumn, ErrInvalidMapping)
	}
	if m.NameColumn == "" || !containsHeader(headers, m.NameColumn) {
		return fmt.Errorf("name column %q: %w", m.NameColumn, ErrInvalidMapping)
	}
	if m.SubjectColumn != "" && !containsHeader(headers, m.SubjectColumn) {
		return fmt.Errorf("subject column %q: %w", m.SubjectColumn, ErrInvalidMapping)
	}
	return nil
}

// MappingUpdate carries a partial mapping edit. Nil fields are left alone,
// so changing one column never disturbs the other two. An empty string for
// Subject clears the optional subject column.
type MappingUpdate struct {
	Recipient *string `json:"recipient,omitempty"`
	Name      *string `json:"name,omitempty"`
	Subject   *string `json:"subject,omitempty"`
}

// Apply returns the mapping with the update applied, validated against
// headers. The receiver is unchanged on failure.
func (m ColumnMapping) Apply(u MappingUpdate, headers []string) (ColumnMapping, error) {
	next := m
	if u.Recipient != nil {
		next.RecipientColumn = *u.Recipient
	}
	if u.Name != nil {
		next.NameColumn = *u.Name
	}
	if u.Subject != nil {
		next.SubjectColumn = *u.Subject
	}
	if err := next.Validate(headers); err != nil {
		return m, err
	}
	return next, nil
}

func matchHeader(headers, patterns []string) string {
	for _, h := range headers {
		for _, p := range patterns {
			if strings.EqualFold(strings.TrimSpace(h), p) {
				return h
			}
		}
	}
	return ""
}

func containsHeader(headers []string, name string) bool {
	for _, h := range headers {
		if h == name {
			return true
		}
	}
	return false
}
