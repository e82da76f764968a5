package repository

import (
	"context"

	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
)

// PaymentMethodProvider delivers the generic payment-method configuration.
// The list is read-only reference data; staleness is tolerated.
type PaymentMethodProvider interface {
	List(ctx context.Context) ([]entity.PaymentMethodConfig, error)
}
