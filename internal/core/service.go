package core

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionTTL is how long an idle workspace survives before the janitor
// drops it. Workspaces live only in memory; there is no persistence across
// restarts.
var SessionTTL = 2 * time.Hour

// Service owns the workspace sessions. Each browser session gets exactly
// one workspace; nothing is shared across sessions.
type Service struct {
	mu         sync.RWMutex
	workspaces map[string]*Workspace
}

// NewService creates a Service with an empty session map.
func NewService() *Service {
	return &Service{workspaces: make(map[string]*Workspace)}
}

// CreateSession allocates a fresh workspace and returns its ID.
func (s *Service) CreateSession() string {
	id := uuid.New().String()

	s.mu.Lock()
	s.workspaces[id] = NewWorkspace()
	s.mu.Unlock()

	return id
}

// Workspace returns the workspace for a session ID.
func (s *Service) Workspace(id string) (*Workspace, error) {
	s.mu.RLock()
	ws, ok := s.workspaces[id]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	return ws, nil
}

// DropSession removes a session's workspace, if it exists.
func (s *Service) DropSession(id string) {
	s.mu.Lock()
	delete(s.workspaces, id)
	s.mu.Unlock()
}

// SessionCount returns the number of live workspaces.
func (s *Service) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workspaces)
}

// Sweep drops workspaces idle longer than SessionTTL and returns how many
// were removed. Called periodically from a janitor goroutine.
func (s *Service) Sweep() int {
	cutoff := time.Now().Add(-SessionTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, ws := range s.workspaces {
		ws.mu.Lock()
		idle := ws.lastActive.Before(cutoff)
		ws.mu.Unlock()
		if idle {
			delete(s.workspaces, id)
			removed++
		}
	}
	return removed
}
