package handler

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/dokanlab/pos-terminal-api/internal/application/service"
	"github.com/dokanlab/pos-terminal-api/internal/presentation/http/dto/request"
	"github.com/dokanlab/pos-terminal-api/internal/presentation/http/dto/response"
)

// SessionHandler handles sale session lifecycle requests
type SessionHandler struct {
	sessions *service.SessionManager
	payments *service.PaymentService
	checkout *service.CheckoutService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *service.SessionManager, payments *service.PaymentService, checkout *service.CheckoutService) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		payments: payments,
		checkout: checkout,
	}
}

// Create opens a new sale session for the authenticated cashier
func (h *SessionHandler) Create(c *gin.Context) {
	cashierID := GetCashierID(c)
	if cashierID == nil {
		response.Unauthorized(c, "Cashier not authenticated")
		return
	}

	session := h.sessions.Create(GetBranchID(c), *cashierID, GetCashierName(c))

	// Pre-select a payment method so the terminal is ready to sell. A payment
	// service outage must not block opening the till.
	if err := h.payments.EnsureSelection(c.Request.Context(), session.ID); err != nil {
		log.Printf("payment pre-selection failed for session %s: %v", session.ID, err)
	}

	snapshot, err := h.sessions.Snapshot(session.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Session created successfully", snapshot)
}

// Get returns the current session state
func (h *SessionHandler) Get(c *gin.Context) {
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

	response.OK(c, "Session retrieved successfully", snapshot)
}

// Reset clears the session for the next sale
func (h *SessionHandler) Reset(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.NewSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.BadRequest(c, "Invalid request body")
		return
	}

	confirm := service.ConfirmerFunc(func(string) bool { return req.Confirm })
	if err := h.checkout.NewSale(sessionID, confirm); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.payments.EnsureSelection(c.Request.Context(), sessionID); err != nil {
		log.Printf("payment pre-selection failed for session %s: %v", sessionID, err)
	}

	snapshot, err := h.sessions.Snapshot(sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session reset for next sale", snapshot)
}
