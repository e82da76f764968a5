package repository

// SaleCompletedEvent is published for downstream consumers (stock, reporting)
// after the order endpoint acknowledges a sale.
type SaleCompletedEvent struct {
	OrderID       string  `json:"order_id"`
	OrderNumber   string  `json:"order_number"`
	BranchID      string  `json:"branch_id"`
	CashierID     string  `json:"cashier_id"`
	PaymentMethod string  `json:"payment_method"`
	ItemCount     int     `json:"item_count"`
	Total         float64 `json:"total"`
}

// SaleEventPublisher pushes completed sales onto the message broker. A
// publish failure must never fail the sale itself.
type SaleEventPublisher interface {
	PublishSaleCompleted(event SaleCompletedEvent) error
}
