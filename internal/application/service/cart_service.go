package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
	"github.com/dokanlab/pos-terminal-api/internal/domain/repository"
	"github.com/dokanlab/pos-terminal-api/pkg/apperror"
)

// Confirmer approves destructive cart operations (clear, reset with items
// present). The store itself never blocks on user interaction; confirmation
// is a capability owned by the caller.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// CartService owns the ordered line-item list and discount input of a sale.
type CartService struct {
	sessions *SessionManager
	catalog  repository.CatalogProvider
}

// NewCartService creates a new cart service
func NewCartService(sessions *SessionManager, catalog repository.CatalogProvider) *CartService {
	return &CartService{sessions: sessions, catalog: catalog}
}

// AddProduct resolves a catalog product and adds it to the cart.
func (s *CartService) AddProduct(ctx context.Context, sessionID uuid.UUID, productID, variantSKU string) error {
	product, err := s.catalog.ProductByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	return s.sessions.With(sessionID, func(session *entity.SaleSession) error {
		return addLineItem(&session.Cart, product, variantSKU)
	})
}

// UpdateQuantity adjusts a line's quantity by delta, floored at 1, and
// recomputes the line total. An out-of-range index is a no-op.
func (s *CartService) UpdateQuantity(sessionID uuid.UUID, index, delta int) error {
	return s.sessions.With(sessionID, func(session *entity.SaleSession) error {
		if index < 0 || index >= len(session.Cart.Items) {
			return nil
		}
		line := &session.Cart.Items[index]
		quantity := line.Quantity + delta
		if quantity < 1 {
			quantity = 1
		}
		line.Quantity = quantity
		line.LineTotal = int64(quantity) * line.UnitPrice
		return nil
	})
}

// RemoveItem removes the line at index. Other lines keep their identity,
// only their position shifts.
func (s *CartService) RemoveItem(sessionID uuid.UUID, index int) error {
	return s.sessions.With(sessionID, func(session *entity.SaleSession) error {
		if index < 0 || index >= len(session.Cart.Items) {
			return nil
		}
		session.Cart.Items = append(session.Cart.Items[:index], session.Cart.Items[index+1:]...)
		return nil
	})
}

// ClearCart empties the items only, leaving the discount input intact.
func (s *CartService) ClearCart(sessionID uuid.UUID, confirm Confirmer) error {
	return s.sessions.With(sessionID, func(session *entity.SaleSession) error {
		if len(session.Cart.Items) == 0 {
			return nil
		}
		if confirm == nil || !confirm.Confirm("Clear all items from the cart?") {
			return apperror.ErrConfirmationRequired
		}
		session.Cart.Items = []entity.CartLineItem{}
		return nil
	})
}

// SetDiscount stores the raw discount input. Parsing and clamping happen at
// summary time.
func (s *CartService) SetDiscount(sessionID uuid.UUID, raw string) error {
	return s.sessions.With(sessionID, func(session *entity.SaleSession) error {
		session.Cart.DiscountInput = raw
		return nil
	})
}

// Summary derives the current cart summary.
func (s *CartService) Summary(sessionID uuid.UUID) (entity.CartSummary, error) {
	var summary entity.CartSummary
	err := s.sessions.With(sessionID, func(session *entity.SaleSession) error {
		summary = ComputeSummary(session.Cart.Items, session.Cart.DiscountInput)
		return nil
	})
	return summary, err
}

// addLineItem is the single mutation path into the cart, shared with the
// barcode flow. It fails without mutating when the targeted stock is gone:
// the variant's own count when a variant is addressed, the branch stock
// otherwise.
func addLineItem(cart *entity.Cart, product *entity.PosProduct, variantSKU string) error {
	unitPrice := product.BasePrice
	variantLabel := ""

	if variantSKU != "" {
		variant := product.FindVariant(variantSKU)
		if variant == nil {
			return apperror.NewNotFoundError("Variant " + variantSKU)
		}
		if variant.Stock <= 0 {
			return apperror.NewOutOfStockError(product.Name)
		}
		unitPrice = VariantUnitPrice(product.BasePrice, variant.PriceModifier)
		variantLabel = variant.Attributes
	} else if product.BranchStock.InStock <= 0 {
		return apperror.NewOutOfStockError(product.Name)
	}

	// Same (productId, variantSku) pair merges into the existing line.
	for i := range cart.Items {
		if cart.Items[i].SameLine(product.ID, variantSKU) {
			cart.Items[i].Quantity++
			cart.Items[i].LineTotal = int64(cart.Items[i].Quantity) * cart.Items[i].UnitPrice
			return nil
		}
	}

	cart.Items = append(cart.Items, entity.CartLineItem{
		ProductID:    product.ID,
		VariantSKU:   variantSKU,
		VariantLabel: variantLabel,
		Quantity:     1,
		UnitPrice:    unitPrice,
		LineTotal:    unitPrice,
		Name:         product.Name,
		Image:        product.Image,
	})
	return nil
}
