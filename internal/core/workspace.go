package core

import (
	"sync"
	"time"
)

// Workspace owns one session's recipient table, attachment index and
// column mapping. Every user-facing action is a discrete edit applied
// under the workspace mutex before the next reconciliation pass runs, so
// the core structures never see concurrent mutation.
type Workspace struct {
	mu sync.Mutex

	table   *RecipientTable
	index   *AttachmentIndex
	mapping ColumnMapping

	lastActive time.Time
}

// NewWorkspace returns a workspace with an empty table and index.
func NewWorkspace() *Workspace {
	return &Workspace{
		table:      NewRecipientTable(),
		index:      NewAttachmentIndex(),
		lastActive: time.Now(),
	}
}

// Snapshot is the state handed back after every edit: the current headers,
// rows, mapping, reconciliation projection and derived batch policy.
type Snapshot struct {
	Headers        []string             `json:"headers"`
	Rows           []RecipientRecord    `json:"rows"`
	Mapping        ColumnMapping        `json:"mapping"`
	Reconciliation ReconciliationResult `json:"reconciliation"`
	Policy         BatchPolicy          `json:"policy"`
}

// LoadTable replaces the table wholesale and re-infers the mapping,
// preserving any previous choice that still names an existing header.
func (w *Workspace) LoadTable(headers []string, rows []map[string]string) (Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.table.Load(headers, rows); err != nil {
		return w.snapshotLocked(), err
	}

	prev := w.mapping
	w.mapping = ResolveMapping(headers, &prev)
	return w.snapshotLocked(), nil
}

// InitializeManual creates an empty table for manual entry when no table
// has been uploaded yet.
func (w *Workspace) InitializeManual(defaultHeaders []string) (Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.table.InitializeManual(defaultHeaders); err != nil {
		return w.snapshotLocked(), err
	}
	w.mapping = ResolveMapping(defaultHeaders, nil)
	return w.snapshotLocked(), nil
}

// AppendRow appends one manually entered row.
func (w *Workspace) AppendRow(values map[string]string) (Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	err := w.table.AppendRow(values, w.mapping)
	return w.snapshotLocked(), err
}

// DeleteRow removes one row by position.
func (w *Workspace) DeleteRow(index int) (Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	err := w.table.DeleteRow(index)
	return w.snapshotLocked(), err
}

// UpdateMapping applies a partial mapping edit. The mapping is validated
// against the current headers before it can reach reconciliation; on
// failure the previous mapping stays active.
func (w *Workspace) UpdateMapping(u MappingUpdate) (Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.table.Loaded() {
		return w.snapshotLocked(), ErrNoTable
	}

	next, err := w.mapping.Apply(u, w.table.Headers())
	if err != nil {
		return w.snapshotLocked(), err
	}
	w.mapping = next
	return w.snapshotLocked(), nil
}

// IngestFiles appends uploaded files to the attachment index. Per-file
// decode failures are reported in the IngestResult and do not abort
// sibling files.
func (w *Workspace) IngestFiles(files []File, contentTypes map[string]string) (Snapshot, IngestResult) {
	w.mu.Lock()
	defer w.mu.Unlock()

	res := w.index.Ingest(files, contentTypes)
	return w.snapshotLocked(), res
}

// ClearAttachments empties the attachment index.
func (w *Workspace) ClearAttachments() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.index.Clear()
	return w.snapshotLocked()
}

// Snapshot returns the current state without mutating anything.
func (w *Workspace) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

// Plan returns the finalized per-recipient pairing and the batch policy
// for the send engine.
func (w *Workspace) Plan() ([]RecipientPlan, BatchPolicy) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return AssignAttachments(w.table, w.index, w.mapping), DeriveBatchPolicy(w.index)
}

func (w *Workspace) snapshotLocked() Snapshot {
	w.lastActive = time.Now()
	return Snapshot{
		Headers:        w.table.Headers(),
		Rows:           w.table.Records(),
		Mapping:        w.mapping,
		Reconciliation: Reconcile(w.table, w.index, w.mapping),
		Policy:         DeriveBatchPolicy(w.index),
	}
}
