package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dokanlab/pos-terminal-api/internal/application/service"
	"github.com/dokanlab/pos-terminal-api/internal/presentation/http/dto/request"
	"github.com/dokanlab/pos-terminal-api/internal/presentation/http/dto/response"
)

// PaymentHandler handles payment method listing and selection
type PaymentHandler struct {
	payments *service.PaymentService
	sessions *service.SessionManager
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(payments *service.PaymentService, sessions *service.SessionManager) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		sessions: sessions,
	}
}

// List returns the selectable payment methods
func (h *PaymentHandler) List(c *gin.Context) {
	methods, err := h.payments.Selectable(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment methods retrieved successfully", methods)
}

// Refresh re-fetches the payment method configuration from upstream
func (h *PaymentHandler) Refresh(c *gin.Context) {
	methods, err := h.payments.Refresh(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment methods refreshed", methods)
}

// Select picks a payment method for the session
func (h *PaymentHandler) Select(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.SelectMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.payments.SelectMethod(c.Request.Context(), sessionID, req.Key); err != nil {
		response.Error(c, err)
		return
	}

	h.respondWithPayment(c, "Payment method selected")
}

// SetReference records the transaction reference for non-cash methods
func (h *PaymentHandler) SetReference(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.ReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.payments.SetReference(sessionID, req.Reference); err != nil {
		response.Error(c, err)
		return
	}

	h.respondWithPayment(c, "Payment reference updated")
}

// SetCashReceived records the cash amount tendered by the customer
func (h *PaymentHandler) SetCashReceived(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.CashReceivedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.payments.SetCashReceived(sessionID, req.Amount); err != nil {
		response.Error(c, err)
		return
	}

	h.respondWithPayment(c, "Cash received updated")
}

func (h *PaymentHandler) respondWithPayment(c *gin.Context, message string) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	snapshot, err := h.sessions.Snapshot(sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, message, snapshot.Payment)
}
