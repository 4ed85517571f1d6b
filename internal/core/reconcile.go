package core

// MatchPair is one matched recipient: the display name exactly as it
// appears in the table (not normalized) and the filenames assigned to it.
type MatchPair struct {
	Name  string   `json:"name"`
	Files []string `json:"files"`
}

// ReconciliationResult is the join between the recipient table and the
// attachment index. It is a pure projection: recomputed after every edit
// to either side, never mutated independently.
type ReconciliationResult struct {
	Total          int         `json:"total"`
	Matched        int         `json:"matched"`
	Unmatched      int         `json:"unmatched"`
	UnmatchedFiles []string    `json:"unmatchedFiles,omitempty"`
	Matches        []MatchPair `json:"matches,omitempty"`
}

// Reconcile joins table and index by normalized key.
//
// Every recipient's name-column value contributes its normalized key to
// the match set; duplicate names collapse, so each row with a repeated
// name matches the same bucket. For each index key present in the set the
// bucket's entry count is credited to Matched and one (name, filenames)
// pair is emitted, the display name recovered from the first row in
// insertion order whose normalized name equals the key. Keys absent from
// the set contribute their filenames to UnmatchedFiles. Unmatched is
// computed as Total minus Matched and always equals the length of
// UnmatchedFiles.
func Reconcile(table *RecipientTable, index *AttachmentIndex, mapping ColumnMapping) ReconciliationResult {
	res := ReconciliationResult{Total: index.Total()}

	// First occurrence in row order wins the display-name tie-break.
	displayNames := make(map[string]string)
	for _, rec := range table.Records() {
		name := rec.DisplayName(mapping)
		key := Normalize(name)
		if _, seen := displayNames[key]; !seen {
			displayNames[key] = name
		}
	}

	for _, key := range index.Keys() {
		bucket := index.Bucket(key)
		name, ok := displayNames[key]
		if !ok {
			for _, entry := range bucket {
				res.UnmatchedFiles = append(res.UnmatchedFiles, entry.Filename)
			}
			continue
		}

		files := make([]string, len(bucket))
		for i, entry := range bucket {
			files[i] = entry.Filename
		}
		res.Matches = append(res.Matches, MatchPair{Name: name, Files: files})
		res.Matched += len(bucket)
	}

	res.Unmatched = res.Total - res.Matched
	return res
}

// RecipientPlan is the finalized pairing for one recipient, used by the
// send engine to compose an individual outgoing message.
type RecipientPlan struct {
	Record      RecipientRecord   `json:"record"`
	Address     string            `json:"address"`
	DisplayName string            `json:"displayName"`
	Subject     string            `json:"subject,omitempty"`
	Attachments []AttachmentEntry `json:"attachments,omitempty"`
}

// AssignAttachments produces the per-recipient send plan in row order.
// Every row whose normalized name matches a bucket receives that bucket's
// entries; rows sharing a name share the same attachment set.
func AssignAttachments(table *RecipientTable, index *AttachmentIndex, mapping ColumnMapping) []RecipientPlan {
	records := table.Records()
	plans := make([]RecipientPlan, 0, len(records))
	for _, rec := range records {
		plans = append(plans, RecipientPlan{
			Record:      rec,
			Address:     rec.Address(mapping),
			DisplayName: rec.DisplayName(mapping),
			Subject:     rec.Subject(mapping),
			Attachments: index.Bucket(Normalize(rec.DisplayName(mapping))),
		})
	}
	return plans
}
