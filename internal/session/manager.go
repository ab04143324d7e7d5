package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/starford/lifeos/internal/apperr"
	"github.com/starford/lifeos/internal/pages"
)

// Manager owns the open sessions.
type Manager struct {
	deps *Deps

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty manager. Zero-valued deps fall back to the
// embedded seed, the simulated collaborators and slog.Default.
func NewManager(deps Deps) *Manager {
	deps.withDefaults()
	return &Manager{
		deps:     &deps,
		sessions: make(map[string]*Session),
	}
}

// Create opens a session on path ("" means the dashboard).
func (m *Manager) Create(path string) (*Session, error) {
	if path == "" {
		path = pages.PathDashboard
	}
	s, err := newSession(uuid.NewString(), path, m.deps)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	n := len(m.sessions)
	m.mu.Unlock()

	if mt := m.deps.Metrics; mt != nil {
		mt.SessionsCreated.Inc()
		mt.SessionsActive.Set(float64(n))
	}
	m.deps.Logger.Info("session created", slog.String("session", s.id), slog.String("path", path))
	return s, nil
}

// Get returns the session with id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, apperr.ErrNotFound)
	}
	return s, nil
}

// Delete tears the session down and forgets it.
func (m *Manager) Delete(id string) error {
	s, ok := m.remove(id)
	if !ok {
		return fmt.Errorf("session %s: %w", id, apperr.ErrNotFound)
	}
	m.teardown(s)
	m.deps.Logger.Info("session closed", slog.String("session", id))
	return nil
}

func (m *Manager) teardown(s *Session) {
	s.Close()
	if m.deps.OnClose != nil {
		m.deps.OnClose(s.id)
	}
}

func (m *Manager) remove(id string) (*Session, bool) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	n := len(m.sessions)
	m.mu.Unlock()
	if ok && m.deps.Metrics != nil {
		m.deps.Metrics.SessionsActive.Set(float64(n))
	}
	return s, ok
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Reap closes every session not seen since now-ttl and returns how many
// were closed.
func (m *Manager) Reap(now time.Time, ttl time.Duration) int {
	cutoff := now.Add(-ttl)

	m.mu.RLock()
	var idle []string
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) {
			idle = append(idle, id)
		}
	}
	m.mu.RUnlock()

	n := 0
	for _, id := range idle {
		s, ok := m.remove(id)
		if !ok {
			continue
		}
		m.teardown(s)
		n++
		m.deps.Logger.Info("session reaped", slog.String("session", id))
	}
	if n > 0 && m.deps.Metrics != nil {
		m.deps.Metrics.SessionsReaped.Add(float64(n))
	}
	return n
}

// RunReaper reaps idle sessions every interval until ctx is done.
func (m *Manager) RunReaper(ctx context.Context, interval, ttl time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Reap(m.deps.Now(), ttl)
		}
	}
}

// Close tears down every session.
func (m *Manager) Close() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range all {
		m.teardown(s)
	}
	if m.deps.Metrics != nil {
		m.deps.Metrics.SessionsActive.Set(0)
	}
}
