package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dokanlab/pos-terminal-api/internal/application/service"
	"github.com/dokanlab/pos-terminal-api/internal/presentation/http/dto/response"
)

// CheckoutHandler handles checkout submission
type CheckoutHandler struct {
	checkout *service.CheckoutService
	sessions *service.SessionManager
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkout *service.CheckoutService, sessions *service.SessionManager) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		sessions: sessions,
	}
}

// Submit validates the sale and submits it to the order endpoint
func (h *CheckoutHandler) Submit(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	result, err := h.checkout.Submit(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	snapshot, snapErr := h.sessions.Snapshot(sessionID)
	if snapErr != nil {
		response.Error(c, snapErr)
		return
	}

	response.OK(c, "Sale completed successfully", gin.H{
		"order":    result,
		"checkout": snapshot.Checkout,
	})
}
