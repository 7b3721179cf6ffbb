package service

import (
	"sync"

	"assessly/internal/domain"
	"assessly/internal/util"
)

// SessionStore is an in-memory registry of quiz sessions keyed by ULID.
// Each session is owned by one client flow; the store only guards the map
// itself.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*domain.Session),
	}
}

// Create registers a new empty session under a fresh ULID
func (s *SessionStore) Create() *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := domain.NewSession(util.NewULID())
	s.sessions[session.ID] = session
	return session
}

// Get looks up a session by its identifier
func (s *SessionStore) Get(id string) (*domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Delete removes a session; deleting an unknown id is a no-op
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len reports the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
