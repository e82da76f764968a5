package request

// SelectMethodRequest picks a payment method by its stable key.
type SelectMethodRequest struct {
	Key string `json:"key" binding:"required"`
}

// ReferenceRequest sets the transaction reference for non-cash methods.
type ReferenceRequest struct {
	Reference string `json:"reference"`
}

// CashReceivedRequest records the cash amount as typed by the cashier.
type CashReceivedRequest struct {
	Amount string `json:"amount"`
}
