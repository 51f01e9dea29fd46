package editor

import (
	"sync"

	"github.com/go-logr/logr"

	"github.com/pagewright/storefront-builder/internal/node"
)

// Sessions tracks the active editing session per tenant. A session is
// created on first visit and kept for the life of the process; drafts give
// it durability across restarts.
type Sessions struct {
	log      logr.Logger
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessions(log logr.Logger) *Sessions {
	return &Sessions{
		log:      log,
		sessions: map[string]*Session{},
	}
}

func (s *Sessions) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Sessions) Get(tenantID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[tenantID]
	return session, ok
}

// GetOrCreate returns the tenant's session, creating it from the initial
// document supplied by the loader on first visit.
func (s *Sessions) GetOrCreate(tenantID string, initial func() node.Layout) *Session {
	s.mu.RLock()
	session, ok := s.sessions[tenantID]
	s.mu.RUnlock()
	if ok {
		return session
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[tenantID]; ok {
		return session
	}
	s.log.V(1).Info("create session", "tenant", tenantID)
	session = NewSession(tenantID, initial(), s.log.WithName("session"))
	s.sessions[tenantID] = session
	return session
}

func (s *Sessions) Delete(tenantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tenantID)
}
