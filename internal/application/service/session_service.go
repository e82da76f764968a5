package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
	"github.com/dokanlab/pos-terminal-api/internal/domain/enum"
	"github.com/dokanlab/pos-terminal-api/pkg/apperror"
)

// SessionManager owns the in-memory sale sessions, one per terminal sale.
// All mutations go through With, which serializes access per session.
// Sessions do not survive a restart.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*sessionEntry
	entryTTL time.Duration
}

type sessionEntry struct {
	mu       sync.Mutex
	session  *entity.SaleSession
	lastSeen time.Time
}

// NewSessionManager creates a session manager. Abandoned sessions are swept
// after ttl of inactivity (zero means no sweeping).
func NewSessionManager(ttl time.Duration) *SessionManager {
	m := &SessionManager{
		sessions: make(map[uuid.UUID]*sessionEntry),
		entryTTL: ttl,
	}
	if ttl > 0 {
		go m.cleanupLoop()
	}
	return m
}

// Create opens a new sale session for a terminal.
func (m *SessionManager) Create(branchID string, cashierID uuid.UUID, cashierName string) *entity.SaleSession {
	session := &entity.SaleSession{
		ID:          uuid.New(),
		BranchID:    branchID,
		CashierID:   cashierID,
		CashierName: cashierName,
		Cart:        entity.Cart{Items: []entity.CartLineItem{}},
		Checkout:    entity.CheckoutState{Status: enum.CheckoutIdle},
		CreatedAt:   time.Now(),
	}

	m.mu.Lock()
	m.sessions[session.ID] = &sessionEntry{session: session, lastSeen: time.Now()}
	m.mu.Unlock()

	return cloneSession(session)
}

// With runs fn with exclusive access to the session's state.
func (m *SessionManager) With(id uuid.UUID, fn func(*entity.SaleSession) error) error {
	m.mu.RLock()
	entry, exists := m.sessions[id]
	m.mu.RUnlock()

	if !exists {
		return apperror.ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.lastSeen = time.Now()
	return fn(entry.session)
}

// Snapshot returns a copy of the session safe to read outside the lock.
func (m *SessionManager) Snapshot(id uuid.UUID) (*entity.SaleSession, error) {
	var snapshot *entity.SaleSession
	err := m.With(id, func(s *entity.SaleSession) error {
		snapshot = cloneSession(s)
		return nil
	})
	return snapshot, err
}

// Remove drops a session, typically after its receipt has been printed.
func (m *SessionManager) Remove(id uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func (m *SessionManager) cleanupLoop() {
	ticker := time.NewTicker(m.entryTTL / 2)
	defer ticker.Stop()

	for range ticker.C {
		m.sweep(time.Now().Add(-m.entryTTL))
	}
}

// sweep drops sessions idle since before cutoff. lastSeen is only read under
// the entry lock; an entry whose lock is held is in use and skipped.
func (m *SessionManager) sweep(cutoff time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, entry := range m.sessions {
		if !entry.mu.TryLock() {
			continue
		}
		stale := entry.lastSeen.Before(cutoff)
		entry.mu.Unlock()
		if stale {
			delete(m.sessions, id)
		}
	}
}

func cloneSession(s *entity.SaleSession) *entity.SaleSession {
	clone := *s
	clone.Cart.Items = append([]entity.CartLineItem(nil), s.Cart.Items...)
	if s.Customer != nil {
		customer := *s.Customer
		clone.Customer = &customer
	}
	return &clone
}
