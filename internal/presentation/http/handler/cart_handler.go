package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dokanlab/pos-terminal-api/internal/application/service"
	"github.com/dokanlab/pos-terminal-api/internal/presentation/http/dto/request"
	"github.com/dokanlab/pos-terminal-api/internal/presentation/http/dto/response"
)

// CartHandler handles cart mutation requests for a sale session
type CartHandler struct {
	cart     *service.CartService
	checkout *service.CheckoutService
	sessions *service.SessionManager
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cart *service.CartService, checkout *service.CheckoutService, sessions *service.SessionManager) *CartHandler {
	return &CartHandler{
		cart:     cart,
		checkout: checkout,
		sessions: sessions,
	}
}

// AddItem adds a product to the cart by product ID
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.cart.AddProduct(c.Request.Context(), sessionID, req.ProductID, req.VariantSKU); err != nil {
		response.Error(c, err)
		return
	}

	h.respondWithCart(c, sessionID, "Item added to cart")
}

// ScanBarcode resolves a barcode and adds the matching product to the cart
func (h *CartHandler) ScanBarcode(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.BarcodeScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.checkout.LookupBarcode(c.Request.Context(), sessionID, req.Code); err != nil {
		response.Error(c, err)
		return
	}

	h.respondWithCart(c, sessionID, "Barcode resolved")
}

// UpdateQuantity nudges a cart line's quantity
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "Invalid item index")
		return
	}

	var req request.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.cart.UpdateQuantity(sessionID, index, req.Delta); err != nil {
		response.Error(c, err)
		return
	}

	h.respondWithCart(c, sessionID, "Quantity updated")
}

// RemoveItem removes a cart line
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "Invalid item index")
		return
	}

	if err := h.cart.RemoveItem(sessionID, index); err != nil {
		response.Error(c, err)
		return
	}

	h.respondWithCart(c, sessionID, "Item removed from cart")
}

// Clear empties the cart, requiring confirmation when items exist
func (h *CartHandler) Clear(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.ClearCartRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.BadRequest(c, "Invalid request body")
		return
	}

	confirm := service.ConfirmerFunc(func(string) bool { return req.Confirm })
	if err := h.cart.ClearCart(sessionID, confirm); err != nil {
		response.Error(c, err)
		return
	}

	h.respondWithCart(c, sessionID, "Cart cleared")
}

// SetDiscount sets the cart-level discount from raw cashier input
func (h *CartHandler) SetDiscount(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.cart.SetDiscount(sessionID, req.Discount); err != nil {
		response.Error(c, err)
		return
	}

	h.respondWithCart(c, sessionID, "Discount updated")
}

// respondWithCart returns the cart plus recomputed totals
func (h *CartHandler) respondWithCart(c *gin.Context, sessionID uuid.UUID, message string) {
	snapshot, err := h.sessions.Snapshot(sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.cart.Summary(sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, message, gin.H{
		"cart":    snapshot.Cart,
		"summary": summary,
	})
}
