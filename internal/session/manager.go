package session

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ziadkadry99/malabomap/internal/atlas"
	"github.com/ziadkadry99/malabomap/internal/mapview"
)

// Manager tracks the live sessions.
type Manager struct {
	opts       mapview.Options
	breakpoint int
	logger     *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager returns a manager whose sessions use opts and the given
// sidebar breakpoint.
func NewManager(opts mapview.Options, breakpoint int, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		opts:       opts,
		breakpoint: breakpoint,
		logger:     logger,
		sessions:   make(map[string]*Session),
	}
}

// Create starts a session over ds.
func (m *Manager) Create(ds *atlas.Dataset) *Session {
	s := newSession(uuid.New().String(), ds, m.opts, m.breakpoint, m.logger)

	m.mu.Lock()
	m.sessions[s.ID] = s
	n := len(m.sessions)
	m.mu.Unlock()

	m.logger.Debug("session created", zap.String("session", s.ID), zap.Int("active", n))
	return s
}

// Get returns the session with id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Remove closes and forgets the session with id.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.Close()
		m.logger.Debug("session removed", zap.String("session", id))
	}
}

// CloseAll ends every session, for shutdown or a dataset reload.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
	for _, s := range sessions {
		s.Close()
	}
	if len(sessions) > 0 {
		m.logger.Info("sessions closed", zap.Int("count", len(sessions)))
	}
}

// IDs lists the live session ids in sorted order.
func (m *Manager) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
