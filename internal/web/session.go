package web

import (
	"context"
	"errors"
	"net/http"

	"mailmerge/backend/internal/auth"
	"mailmerge/backend/internal/core"
)

// sessionCookie is the name of the cookie carrying the signed session token.
const sessionCookie = "mm_session"

type contextKey string

const sessionIDKey contextKey = "sessionID"

// requireSession validates the session token cookie and checks the
// workspace still exists before letting the request through. The session
// ID lands in the request context for handlers.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "not logged in")
			return
		}

		claims, err := s.auth.ValidateToken(cookie.Value)
		if err != nil {
			msg := "invalid session token"
			if errors.Is(err, auth.ErrExpiredToken) {
				msg = "session expired"
			}
			writeError(w, http.StatusUnauthorized, msg)
			return
		}

		// The workspace may have been swept while the token was still valid.
		if _, err := s.service.Workspace(claims.SessionID); err != nil {
			s.respondError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), sessionIDKey, claims.SessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionID extracts the session ID placed in context by requireSession.
func sessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}

// workspace resolves the request's workspace. Only called behind
// requireSession, but the workspace can still vanish between the
// middleware check and the handler, so the error path stays.
func (s *Server) workspace(r *http.Request) (*core.Workspace, error) {
	return s.service.Workspace(sessionID(r.Context()))
}

// setSessionCookie writes the session token cookie.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.auth.Expiry().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookie expires the session token cookie.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
