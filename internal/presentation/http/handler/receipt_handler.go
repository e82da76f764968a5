package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dokanlab/pos-terminal-api/internal/application/service"
	"github.com/dokanlab/pos-terminal-api/internal/presentation/http/dto/response"
)

// ReceiptHandler handles receipt retrieval and printing
type ReceiptHandler struct {
	receipts *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receipts *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receipts: receipts}
}

// Get returns the normalized receipt for the completed sale
func (h *ReceiptHandler) Get(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	receipt, err := h.receipts.GetReceipt(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// Print formats the receipt and sends it to the configured printer
func (h *ReceiptHandler) Print(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	receipt, err := h.receipts.PrintReceipt(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt sent to printer", receipt)
}

// Status reports the configured printer's connection state
func (h *ReceiptHandler) Status(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.receipts.Status())
}
