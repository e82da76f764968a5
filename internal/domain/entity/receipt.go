package entity

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptItem is a single decoded line item on a receipt.
type ReceiptItem struct {
	Name         string  `json:"name"`
	VariantLabel string  `json:"variant_label,omitempty"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	Total        float64 `json:"total"`
}

// ReceiptVAT is the VAT block printed below the totals.
type ReceiptVAT struct {
	Applicable bool    `json:"applicable"`
	Rate       float64 `json:"rate"`
	Amount     float64 `json:"amount"`
	SellerBIN  string  `json:"seller_bin,omitempty"`
}

// ReceiptPayment is how the sale was tendered.
type ReceiptPayment struct {
	Method    string `json:"method"`
	Reference string `json:"reference,omitempty"`
}

// Receipt is the strict display/print model decoded from the loosely-typed
// receipt payload. It is created once per completed order and read-only
// thereafter. Amounts are decimal for display.
type Receipt struct {
	Header         ReceiptHeader  `json:"header"`
	OrderNumber    string         `json:"order_number"`
	Date           string         `json:"date"`
	Items          []ReceiptItem  `json:"items"`
	Subtotal       float64        `json:"subtotal"`
	Discount       float64        `json:"discount"`
	DeliveryCharge float64        `json:"delivery_charge"`
	VAT            ReceiptVAT     `json:"vat"`
	Total          float64        `json:"total"`
	Payment        ReceiptPayment `json:"payment"`
	Customer       string         `json:"customer,omitempty"`
	Branch         string         `json:"branch"`

	// Recomputed client-side from the session-remembered cash received;
	// the receipt endpoint does not echo it back.
	CashReceived float64 `json:"cash_received,omitempty"`
	Change       float64 `json:"change,omitempty"`
	AmountDue    float64 `json:"amount_due,omitempty"`
}
