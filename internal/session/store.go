// Package session provides session management functionality.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kyiku/shapefill/internal/placement"
	"github.com/kyiku/shapefill/internal/selection"
)

// SessionStore manages canvas sessions in memory.
type SessionStore struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	expiry   time.Duration // 0 means no expiry
	engine   *placement.Engine
	policy   selection.Policy
	notifier Notifier
}

// NewSessionStore creates a new SessionStore with no expiry.
func NewSessionStore(engine *placement.Engine, policy selection.Policy) *SessionStore {
	return NewSessionStoreWithExpiry(engine, policy, 0)
}

// NewSessionStoreWithExpiry creates a new SessionStore with the specified expiry duration.
func NewSessionStoreWithExpiry(engine *placement.Engine, policy selection.Policy, expiry time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		expiry:   expiry,
		engine:   engine,
		policy:   policy,
	}
}

// SetNotifier sets the notifier attached to sessions created afterwards.
func (s *SessionStore) SetNotifier(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = n
}

// Create creates a new session and returns it with its ID.
func (s *SessionStore) Create() (*Session, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessionID := uuid.New().String()
	sess := NewSession(sessionID, s.engine, s.policy)
	if s.notifier != nil {
		sess.SetNotifier(s.notifier)
	}

	s.sessions[sessionID] = sess
	return sess, sessionID
}

// Get retrieves a session by ID.
// Returns nil and false if the session does not exist or has expired.
func (s *SessionStore) Get(sessionID string) (*Session, bool) {
	s.mu.RLock()
	sess, exists := s.sessions[sessionID]
	s.mu.RUnlock()

	if !exists {
		return nil, false
	}

	// Check expiry if set
	if s.expiry > 0 && time.Since(sess.CreatedAt) > s.expiry {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return nil, false
	}

	return sess, true
}

// Delete removes a session by ID.
func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Count returns the number of active sessions.
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
