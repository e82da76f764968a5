package repository

import (
	"context"

	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
)

// OrderGateway is the order submission and receipt retrieval upstream.
type OrderGateway interface {
	// Submit posts the checkout request carrying its idempotency key. The
	// implementation may retry at the transport level but must reuse the
	// same key for every retry of the same attempt.
	Submit(ctx context.Context, req *entity.CheckoutRequest) (*entity.OrderResult, error)

	// FetchReceipt returns the loosely-typed receipt payload for an order.
	// Field names vary across backend versions; decoding is the
	// ReceiptService's job.
	FetchReceipt(ctx context.Context, orderID string) (map[string]interface{}, error)
}
