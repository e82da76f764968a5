package request

// AddItemRequest adds a product line to the cart.
type AddItemRequest struct {
	ProductID  string `json:"product_id" binding:"required"`
	VariantSKU string `json:"variant_sku"`
}

// UpdateQuantityRequest nudges a line's quantity up or down.
type UpdateQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// DiscountRequest sets the cart-level discount as typed by the cashier.
type DiscountRequest struct {
	Discount string `json:"discount"`
}

// ClearCartRequest empties the cart. Confirm must be true when the cart
// has items.
type ClearCartRequest struct {
	Confirm bool `json:"confirm"`
}

// BarcodeScanRequest resolves a scanned barcode into a cart line.
type BarcodeScanRequest struct {
	Code string `json:"code" binding:"required"`
}
