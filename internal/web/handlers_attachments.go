package web

import (
	"net/http"

	"mailmerge/backend/internal/core"
	"mailmerge/backend/internal/ingest"
	"mailmerge/backend/internal/logging"
)

// attachmentsResponse pairs the ingest outcome with the refreshed
// snapshot so a single round trip shows the new reconciliation state.
type attachmentsResponse struct {
	Result   core.IngestResult `json:"result"`
	Snapshot core.Snapshot     `json:"snapshot"`
}

// handleUploadAttachments ingests one or more uploaded files into the
// attachment index. Per-file failures are reported in the result and do
// not fail the request.
func (s *Server) handleUploadAttachments(w http.ResponseWriter, r *http.Request) {
	ws, err := s.workspace(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	maxSize := s.cfg.Upload.MaxFormSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, http.StatusBadRequest, "upload too large or invalid form")
		return
	}

	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		writeError(w, http.StatusBadRequest, "no files provided")
		return
	}

	files, contentTypes := ingest.FromMultipart(r.MultipartForm.File["files"])
	snap, result := ws.IngestFiles(files, contentTypes)

	logging.FromContext(r.Context()).Info("attachments ingested",
		"session_id", sessionID(r.Context()),
		"added", result.Added,
		"failed", len(result.Failed),
	)
	writeJSON(w, attachmentsResponse{Result: result, Snapshot: snap})
}

// handleClearAttachments empties the attachment index.
func (s *Server) handleClearAttachments(w http.ResponseWriter, r *http.Request) {
	ws, err := s.workspace(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, ws.ClearAttachments())
}

// handleReconciliation returns the current reconciliation projection and
// batch policy.
func (s *Server) handleReconciliation(w http.ResponseWriter, r *http.Request) {
	ws, err := s.workspace(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	snap := ws.Snapshot()
	writeJSON(w, map[string]interface{}{
		"reconciliation": snap.Reconciliation,
		"policy":         snap.Policy,
	})
}
