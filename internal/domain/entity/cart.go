package entity

import "encoding/json"

// CartLineItem is one priced line in the cart. Identity is the
// (ProductID, VariantSKU) pair; LineTotal is always recomputed on mutation,
// never stored independently of Quantity and UnitPrice.
type CartLineItem struct {
	ProductID    string `json:"product_id"`
	VariantSKU   string `json:"variant_sku,omitempty"`
	VariantLabel string `json:"variant_label,omitempty"`
	Quantity     int    `json:"quantity"`
	UnitPrice    int64  `json:"-"` // cents
	LineTotal    int64  `json:"-"` // cents
	Name         string `json:"name"`
	Image        string `json:"image,omitempty"`
}

// MarshalJSON converts cents to decimal for API responses
func (l CartLineItem) MarshalJSON() ([]byte, error) {
	type Alias CartLineItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		LineTotal float64 `json:"line_total"`
	}{
		Alias:     Alias(l),
		UnitPrice: float64(l.UnitPrice) / 100,
		LineTotal: float64(l.LineTotal) / 100,
	})
}

// SameLine reports whether the line holds the given identity pair.
func (l *CartLineItem) SameLine(productID, variantSKU string) bool {
	return l.ProductID == productID && l.VariantSKU == variantSKU
}

// Cart holds the ordered line items and the raw discount input for one sale.
// It lives only for the duration of the sale and is never persisted.
type Cart struct {
	Items         []CartLineItem `json:"items"`
	DiscountInput string         `json:"discount_input"`
}

// CartSummary is derived from the cart, never mutated directly.
// Invariants: 0 <= Discount <= Subtotal, Total = Subtotal - Discount.
type CartSummary struct {
	Subtotal  int64 `json:"-"` // cents
	Discount  int64 `json:"-"` // cents
	Total     int64 `json:"-"` // cents
	ItemCount int   `json:"item_count"`
}

// MarshalJSON converts cents to decimal for API responses
func (s CartSummary) MarshalJSON() ([]byte, error) {
	type Alias CartSummary
	return json.Marshal(&struct {
		Alias
		Subtotal float64 `json:"subtotal"`
		Discount float64 `json:"discount"`
		Total    float64 `json:"total"`
	}{
		Alias:    Alias(s),
		Subtotal: float64(s.Subtotal) / 100,
		Discount: float64(s.Discount) / 100,
		Total:    float64(s.Total) / 100,
	})
}
