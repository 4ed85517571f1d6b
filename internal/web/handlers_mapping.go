package web

import (
	"encoding/json"
	"net/http"

	"mailmerge/backend/internal/core"
)

// handleGetMapping returns the active column mapping.
func (s *Server) handleGetMapping(w http.ResponseWriter, r *http.Request) {
	ws, err := s.workspace(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, ws.Snapshot().Mapping)
}

// handleUpdateMapping applies a partial mapping edit. Fields absent from
// the body are left alone; an empty subject clears the subject column.
func (s *Server) handleUpdateMapping(w http.ResponseWriter, r *http.Request) {
	ws, err := s.workspace(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var update core.MappingUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snap, err := ws.UpdateMapping(update)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, snap)
}
