package session

import (
	"context"
	"log/slog"
	"sync"

	"splitledger/internal/metrics"
	"splitledger/internal/notify"
	"splitledger/internal/storage"
)

// Manager keeps at most one live ledger session per user, refcounted. Two
// balance streams from the same user share a session; the session stops when
// the last reference is released.
type Manager struct {
	store    storage.Store
	notifier notify.Notifier

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	ledger *Ledger
	refs   int
}

// NewManager creates a session manager.
func NewManager(store storage.Store, notifier notify.Notifier) *Manager {
	return &Manager{
		store:    store,
		notifier: notifier,
		sessions: make(map[string]*entry),
	}
}

// Acquire returns the user's live session, starting one if none exists. The
// returned release function must be called exactly once when the caller is
// done; releasing the last reference stops the session.
func (m *Manager) Acquire(ctx context.Context, email string) (*Ledger, func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[email]
	if !ok {
		l := NewLedger(email, m.store, m.notifier, func(err error) {
			slog.Error("ledger session error", "user", email, "error", err)
		})
		// The session outlives the request that started it; only the last
		// release stops it.
		if err := l.Start(context.WithoutCancel(ctx)); err != nil {
			return nil, nil, err
		}
		e = &entry{ledger: l}
		m.sessions[email] = e
		metrics.SessionsActive.Inc()
	}
	e.refs++

	var once sync.Once
	release := func() {
		once.Do(func() { m.release(email) })
	}
	return e.ledger, release, nil
}

func (m *Manager) release(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[email]
	if !ok {
		return
	}
	e.refs--
	if e.refs > 0 {
		return
	}
	delete(m.sessions, email)
	metrics.SessionsActive.Dec()
	e.ledger.Stop()
}

// Shutdown stops every live session.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for email, e := range m.sessions {
		e.ledger.Stop()
		delete(m.sessions, email)
		metrics.SessionsActive.Dec()
	}
}
