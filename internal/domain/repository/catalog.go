package repository

import (
	"context"

	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
)

// CatalogProvider is the read-only product/stock catalog upstream.
type CatalogProvider interface {
	// ProductByID returns the product with branch stock for this terminal's
	// branch, or nil when the catalog has no such product.
	ProductByID(ctx context.Context, id string) (*entity.PosProduct, error)
}

// BarcodeMatch is a successful barcode lookup: the product plus the specific
// variant the barcode addresses, if any.
type BarcodeMatch struct {
	Product    *entity.PosProduct
	VariantSKU string
}

// BarcodeService resolves scanned codes to catalog products.
type BarcodeService interface {
	// Lookup returns nil (with no error) when no product matches the code.
	Lookup(ctx context.Context, code string) (*BarcodeMatch, error)
}
