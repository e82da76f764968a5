package entity

import "github.com/dokanlab/pos-terminal-api/internal/domain/enum"

// CheckoutRequest is the idempotent order submission payload. The
// IdempotencyKey is generated once per sale attempt and reused across
// transport-level retries of that attempt; a brand-new attempt gets a
// fresh key.
type CheckoutRequest struct {
	Items          []CheckoutItem  `json:"items"`
	CustomerID     string          `json:"customerId,omitempty"`
	GuestInfo      *GuestInfo      `json:"guestInfo,omitempty"`
	Discount       float64         `json:"discount"`
	Payment        CheckoutPayment `json:"payment"`
	BranchID       string          `json:"branchId"`
	IdempotencyKey string          `json:"idempotencyKey"`
	Source         string          `json:"source"` // always "pos"
}

// CheckoutItem is one order line on the wire.
type CheckoutItem struct {
	ProductID  string  `json:"productId"`
	VariantSKU string  `json:"variantSku,omitempty"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
}

// GuestInfo carries freeform customer details when no directory match was
// attached to the sale.
type GuestInfo struct {
	CustomerName  string `json:"customerName,omitempty"`
	CustomerPhone string `json:"customerPhone,omitempty"`
}

// CheckoutPayment describes how the sale was tendered. Reference is set for
// every method except cash; CashReceived only for cash.
type CheckoutPayment struct {
	Method       enum.PosMethod `json:"method"`
	Reference    string         `json:"reference,omitempty"`
	CashReceived *float64       `json:"cashReceived,omitempty"`
}

// OrderResult is the order endpoint's acknowledgement.
type OrderResult struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
}

// CheckoutState is the submission state machine for one sale.
type CheckoutState struct {
	Status      enum.CheckoutStatus `json:"status"`
	OrderID     string              `json:"order_id,omitempty"`
	OrderNumber string              `json:"order_number,omitempty"`
	LastError   string              `json:"last_error,omitempty"`
}
