package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/dokanlab/pos-terminal-api/internal/domain/enum"
)

// SaleSession is all in-memory state for one sale at one terminal: the cart,
// the payment selection, the attached customer and the checkout state
// machine. Sessions are never shared across terminals and never persisted.
type SaleSession struct {
	ID          uuid.UUID     `json:"id"`
	BranchID    string        `json:"branch_id"`
	CashierID   uuid.UUID     `json:"cashier_id"`
	CashierName string        `json:"cashier_name,omitempty"`
	Cart        Cart          `json:"cart"`
	Payment     PaymentSelection `json:"payment"`
	Customer    *Customer     `json:"customer,omitempty"`
	GuestName   string        `json:"guest_name,omitempty"`
	GuestPhone  string        `json:"guest_phone,omitempty"`
	Checkout    CheckoutState `json:"checkout"`
	CreatedAt   time.Time     `json:"created_at"`

	// LookupSeq orders overlapping barcode lookups: only the most recently
	// issued lookup's result may mutate the cart.
	LookupSeq uint64 `json:"-"`
}

// HasCustomer reports whether any customer information is attached.
func (s *SaleSession) HasCustomer() bool {
	return s.Customer != nil || s.GuestName != "" || s.GuestPhone != ""
}

// StartNewSale atomically resets cart, discount, payment selection, customer
// and checkout state together. Partial reset is not an observable state.
func (s *SaleSession) StartNewSale() {
	s.Cart = Cart{Items: []CartLineItem{}}
	s.Payment.Clear()
	s.Customer = nil
	s.GuestName = ""
	s.GuestPhone = ""
	s.Checkout = CheckoutState{Status: enum.CheckoutIdle}
}
