package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mailmerge/backend/internal/ingest"
	"mailmerge/backend/internal/logging"
)

// handleWorkspaceState returns the current snapshot without mutating
// anything.
func (s *Server) handleWorkspaceState(w http.ResponseWriter, r *http.Request) {
	ws, err := s.workspace(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, ws.Snapshot())
}

// handleUploadRecipients loads a CSV recipient table, replacing any
// previous table wholesale.
func (s *Server) handleUploadRecipients(w http.ResponseWriter, r *http.Request) {
	ws, err := s.workspace(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	table, err := ingest.ParseTable(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is not valid CSV")
		return
	}

	snap, err := ws.LoadTable(table.Headers, table.Rows)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("recipient table loaded",
		"session_id", sessionID(r.Context()),
		"file", header.Filename,
		"rows", len(snap.Rows),
	)
	writeJSON(w, snap)
}

// manualInitRequest is the JSON body for POST /api/recipients/manual.
type manualInitRequest struct {
	Headers []string `json:"headers"`
}

// handleInitManual starts an empty table for manual row entry.
func (s *Server) handleInitManual(w http.ResponseWriter, r *http.Request) {
	ws, err := s.workspace(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var req manualInitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snap, err := ws.InitializeManual(req.Headers)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, snap)
}

// appendRowRequest is the JSON body for POST /api/recipients/rows.
type appendRowRequest struct {
	Values map[string]string `json:"values"`
}

// handleAppendRow appends one manually entered row.
func (s *Server) handleAppendRow(w http.ResponseWriter, r *http.Request) {
	ws, err := s.workspace(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var req appendRowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snap, err := ws.AppendRow(req.Values)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, snap)
}

// handleDeleteRow removes one row by position.
func (s *Server) handleDeleteRow(w http.ResponseWriter, r *http.Request) {
	ws, err := s.workspace(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid row index")
		return
	}

	snap, err := ws.DeleteRow(index)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, snap)
}
