package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
	"github.com/dokanlab/pos-terminal-api/internal/domain/enum"
	"github.com/dokanlab/pos-terminal-api/internal/domain/repository"
	"github.com/dokanlab/pos-terminal-api/pkg/apperror"
)

// PaymentService maps the generic payment-method configuration to
// POS-specific method tags and manages each session's selection.
type PaymentService struct {
	sessions *SessionManager
	provider repository.PaymentMethodProvider

	mu         sync.RWMutex
	selectable []entity.SelectableMethod
}

// NewPaymentService creates a new payment service
func NewPaymentService(sessions *SessionManager, provider repository.PaymentMethodProvider) *PaymentService {
	return &PaymentService{sessions: sessions, provider: provider}
}

// PaymentKey returns a stable selection key for a configured method: the
// backend id when present, else a composite that stays stable for the same
// underlying list position.
func PaymentKey(method entity.PaymentMethodConfig, index int) string {
	if method.ID != "" {
		return method.ID
	}
	return fmt.Sprintf("%s:%s:%s:%d", method.Type, method.Provider, method.Name, index)
}

// MapToPosMethod derives the POS method tag from a configured method. The
// second return is false for unsupported (type, provider) pairs, which are
// excluded from the selectable list entirely.
func MapToPosMethod(method entity.PaymentMethodConfig) (enum.PosMethod, bool) {
	switch method.Type {
	case enum.PaymentTypeCash:
		return enum.PosMethodCash, true
	case enum.PaymentTypeMFS:
		switch strings.ToLower(method.Provider) {
		case "bkash":
			return enum.PosMethodBkash, true
		case "nagad":
			return enum.PosMethodNagad, true
		case "rocket":
			return enum.PosMethodRocket, true
		case "upay":
			return enum.PosMethodUpay, true
		}
		return "", false
	case enum.PaymentTypeBankTransfer:
		return enum.PosMethodBankTransfer, true
	case enum.PaymentTypeCard:
		return enum.PosMethodCard, true
	}
	return "", false
}

// ResolveSelectable filters and maps the raw configuration into the
// selectable list. Inactive and unsupported methods are dropped.
func ResolveSelectable(configs []entity.PaymentMethodConfig) []entity.SelectableMethod {
	selectable := make([]entity.SelectableMethod, 0, len(configs))
	for i, cfg := range configs {
		if !cfg.IsActive {
			continue
		}
		posMethod, ok := MapToPosMethod(cfg)
		if !ok {
			continue
		}
		selectable = append(selectable, entity.SelectableMethod{
			Key:          PaymentKey(cfg, i),
			PosMethod:    posMethod,
			Name:         cfg.Name,
			Provider:     cfg.Provider,
			WalletNumber: cfg.WalletNumber,
		})
	}
	return selectable
}

// Refresh fetches the configuration and replaces the cached selectable list.
// Staleness between refreshes is tolerated; a refresh never clobbers an
// already-made selection (EnsureSelection re-validates per session).
func (s *PaymentService) Refresh(ctx context.Context) ([]entity.SelectableMethod, error) {
	configs, err := s.provider.List(ctx)
	if err != nil {
		return nil, err
	}
	selectable := ResolveSelectable(configs)

	s.mu.Lock()
	s.selectable = selectable
	s.mu.Unlock()

	return selectable, nil
}

// Selectable returns the cached selectable list, fetching it on first use.
func (s *PaymentService) Selectable(ctx context.Context) ([]entity.SelectableMethod, error) {
	s.mu.RLock()
	cached := s.selectable
	s.mu.RUnlock()

	if cached != nil {
		return cached, nil
	}
	return s.Refresh(ctx)
}

// EnsureSelection applies the auto-selection rule for a session against the
// current list: keep an existing selection whose key still exists; otherwise
// prefer the first cash entry, else the first entry.
func (s *PaymentService) EnsureSelection(ctx context.Context, sessionID uuid.UUID) error {
	list, err := s.Selectable(ctx)
	if err != nil {
		return err
	}
	return s.sessions.With(sessionID, func(session *entity.SaleSession) error {
		applySelectionRule(&session.Payment, list)
		return nil
	})
}

// SelectMethod sets the session's selected method by key. Switching keys
// always clears the captured reference and cash input so a value entered for
// one method never leaks into another.
func (s *PaymentService) SelectMethod(ctx context.Context, sessionID uuid.UUID, key string) error {
	list, err := s.Selectable(ctx)
	if err != nil {
		return err
	}

	var selected *entity.SelectableMethod
	for i := range list {
		if list[i].Key == key {
			selected = &list[i]
			break
		}
	}
	if selected == nil {
		return apperror.NewBadRequestError("Unknown payment method key")
	}

	return s.sessions.With(sessionID, func(session *entity.SaleSession) error {
		if session.Payment.SelectedKey == key {
			return nil
		}
		session.Payment = entity.PaymentSelection{
			SelectedKey: key,
			PosMethod:   selected.PosMethod,
		}
		return nil
	})
}

// SetReference captures the proof-of-payment reference for the selection.
func (s *PaymentService) SetReference(sessionID uuid.UUID, reference string) error {
	return s.sessions.With(sessionID, func(session *entity.SaleSession) error {
		if session.Payment.SelectedKey == "" {
			return apperror.ErrNoPaymentSelected
		}
		session.Payment.Reference = strings.TrimSpace(reference)
		return nil
	})
}

// SetCashReceived captures the raw cash-received input for a cash selection.
func (s *PaymentService) SetCashReceived(sessionID uuid.UUID, raw string) error {
	return s.sessions.With(sessionID, func(session *entity.SaleSession) error {
		if session.Payment.SelectedKey == "" {
			return apperror.ErrNoPaymentSelected
		}
		session.Payment.CashReceivedRaw = raw
		return nil
	})
}

func applySelectionRule(selection *entity.PaymentSelection, list []entity.SelectableMethod) {
	if selection.SelectedKey != "" {
		for _, m := range list {
			if m.Key == selection.SelectedKey {
				return // existing selection survives a list change
			}
		}
	}

	if len(list) == 0 {
		selection.Clear()
		return
	}

	chosen := list[0]
	for _, m := range list {
		if m.PosMethod == enum.PosMethodCash {
			chosen = m
			break
		}
	}

	if selection.SelectedKey == chosen.Key {
		return
	}
	*selection = entity.PaymentSelection{
		SelectedKey: chosen.Key,
		PosMethod:   chosen.PosMethod,
	}
}
