package web

import (
	"encoding/json"
	"net/http"

	"mailmerge/backend/internal/logging"
)

// loginRequest is the JSON body for POST /api/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleLogin verifies operator credentials, allocates a fresh workspace
// session and sets the session token cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.auth.VerifyCredentials(req.Username, req.Password); err != nil {
		logging.FromContext(r.Context()).Warn("login rejected", "username", req.Username)
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	id := s.service.CreateSession()
	token, err := s.auth.IssueToken(id)
	if err != nil {
		s.service.DropSession(id)
		s.respondError(w, r, err)
		return
	}

	s.setSessionCookie(w, token)
	logging.FromContext(r.Context()).Info("login", "session_id", id)
	writeJSON(w, map[string]string{"sessionId": id})
}

// handleLogout drops the workspace and clears the cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r.Context())
	s.service.DropSession(id)
	s.clearSessionCookie(w)

	logging.FromContext(r.Context()).Info("logout", "session_id", id)
	writeJSON(w, map[string]string{"status": "logged out"})
}
