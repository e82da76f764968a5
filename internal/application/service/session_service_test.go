package service

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
	"github.com/dokanlab/pos-terminal-api/pkg/apperror"
)

func TestSessionManagerCreateAndSnapshot(t *testing.T) {
	manager := NewSessionManager(time.Hour)
	cashierID := uuid.New()

	session := manager.Create("main", cashierID, "Asha")
	assert.NotEqual(t, uuid.Nil, session.ID)

	snapshot, err := manager.Snapshot(session.ID)
	require.NoError(t, err)
	assert.Equal(t, "main", snapshot.BranchID)
	assert.Equal(t, cashierID, snapshot.CashierID)
	assert.Equal(t, "Asha", snapshot.CashierName)
}

func TestSessionManagerUnknownSession(t *testing.T) {
	manager := NewSessionManager(time.Hour)

	err := manager.With(uuid.New(), func(*entity.SaleSession) error { return nil })
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)

	_, err = manager.Snapshot(uuid.New())
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}

func TestSessionManagerRemove(t *testing.T) {
	manager := NewSessionManager(time.Hour)
	session := manager.Create("main", uuid.New(), "Asha")

	manager.Remove(session.ID)

	_, err := manager.Snapshot(session.ID)
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	manager := NewSessionManager(time.Hour)
	session := manager.Create("main", uuid.New(), "Asha")

	require.NoError(t, manager.With(session.ID, func(s *entity.SaleSession) error {
		s.Cart.Items = append(s.Cart.Items, entity.CartLineItem{ProductID: "prod-2", Quantity: 1, UnitPrice: 35000, LineTotal: 35000})
		s.Customer = &entity.Customer{ID: "cust-1", Name: "Rahim"}
		return nil
	}))

	snapshot, err := manager.Snapshot(session.ID)
	require.NoError(t, err)

	snapshot.Cart.Items[0].Quantity = 99
	snapshot.Customer.Name = "changed"

	fresh, err := manager.Snapshot(session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.Cart.Items[0].Quantity)
	assert.Equal(t, "Rahim", fresh.Customer.Name)
}

func TestWithSerializesMutations(t *testing.T) {
	manager := NewSessionManager(time.Hour)
	session := manager.Create("main", uuid.New(), "Asha")

	require.NoError(t, manager.With(session.ID, func(s *entity.SaleSession) error {
		s.Cart.Items = append(s.Cart.Items, entity.CartLineItem{ProductID: "prod-2", Quantity: 0, UnitPrice: 100})
		return nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = manager.With(session.ID, func(s *entity.SaleSession) error {
				s.Cart.Items[0].Quantity++
				return nil
			})
		}()
	}
	wg.Wait()

	snapshot, err := manager.Snapshot(session.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, snapshot.Cart.Items[0].Quantity)
}

func TestSweepRemovesIdleSessions(t *testing.T) {
	manager := NewSessionManager(0)
	session := manager.Create("main", uuid.New(), "Asha")

	manager.sweep(time.Now().Add(time.Minute))

	_, err := manager.Snapshot(session.ID)
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}

func TestSweepSkipsSessionsInUse(t *testing.T) {
	manager := NewSessionManager(0)
	session := manager.Create("main", uuid.New(), "Asha")

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- manager.With(session.ID, func(s *entity.SaleSession) error {
			close(entered)
			<-release
			return nil
		})
	}()

	<-entered
	manager.sweep(time.Now().Add(time.Minute))

	manager.mu.RLock()
	_, exists := manager.sessions[session.ID]
	manager.mu.RUnlock()
	assert.True(t, exists, "a session being mutated must survive the sweep")

	close(release)
	require.NoError(t, <-done)

	manager.sweep(time.Now().Add(time.Minute))
	_, err := manager.Snapshot(session.ID)
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}
