package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/dokanlab/pos-terminal-api/internal/domain/enum"
	"gorm.io/gorm"
)

// SaleRecord journals one order submission attempt: the idempotency key it
// carried and the outcome. This is an operational audit trail for end-of-day
// reconciliation; cart state itself is never persisted.
type SaleRecord struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SessionID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"session_id"`
	BranchID       string          `gorm:"size:100;not null;index" json:"branch_id"`
	CashierID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"cashier_id"`
	IdempotencyKey string          `gorm:"size:100;uniqueIndex;not null" json:"idempotency_key"`
	Status         enum.SaleStatus `gorm:"default:0" json:"status"`
	OrderID        *string         `gorm:"size:100;index" json:"order_id,omitempty"`
	OrderNumber    *string         `gorm:"size:100" json:"order_number,omitempty"`
	PaymentMethod  string          `gorm:"size:50" json:"payment_method"`
	ItemCount      int             `gorm:"default:0" json:"item_count"`
	Subtotal       int64           `gorm:"default:0" json:"-"` // cents
	Discount       int64           `gorm:"default:0" json:"-"` // cents
	Total          int64           `gorm:"default:0" json:"-"` // cents
	ErrorMessage   *string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// MarshalJSON converts cents to decimal for API responses
func (r SaleRecord) MarshalJSON() ([]byte, error) {
	type Alias SaleRecord
	return json.Marshal(&struct {
		Alias
		Subtotal float64 `json:"subtotal"`
		Discount float64 `json:"discount"`
		Total    float64 `json:"total"`
	}{
		Alias:    Alias(r),
		Subtotal: float64(r.Subtotal) / 100,
		Discount: float64(r.Discount) / 100,
		Total:    float64(r.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale record
func (r *SaleRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleRecord model
func (SaleRecord) TableName() string {
	return "sale_records"
}
