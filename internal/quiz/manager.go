package quiz

import (
	"sync"

	"github.com/pavelanni/quizmaster/internal/model"
)

// Manager is the server-side registry of in-progress quiz sessions,
// keyed by auth session token. Quiz progress lives only here, never in
// the database; a session disappears when overwritten by a new quiz,
// on logout, or when the process exits.
//
// The map is shared across request goroutines, hence the RWMutex. A
// single user's requests are handled sequentially, so no further
// coordination is needed on the sessions themselves.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*model.QuizSession
}

// NewManager creates an empty session registry.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*model.QuizSession)}
}

// Put stores the quiz session for a token, replacing any previous one.
func (m *Manager) Put(token string, s *model.QuizSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = s
}

// Get returns the quiz session for a token, or nil when no quiz has
// been started for it.
func (m *Manager) Get(token string) *model.QuizSession {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[token]
}

// Delete removes the quiz session for a token, if any.
func (m *Manager) Delete(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}
