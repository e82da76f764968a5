package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dokanlab/pos-terminal-api/internal/application/service"
	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
	"github.com/dokanlab/pos-terminal-api/internal/presentation/http/dto/request"
	"github.com/dokanlab/pos-terminal-api/internal/presentation/http/dto/response"
)

// CustomerHandler handles customer directory requests
type CustomerHandler struct {
	customers *service.CustomerService
	checkout  *service.CheckoutService
	sessions  *service.SessionManager
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customers *service.CustomerService, checkout *service.CheckoutService, sessions *service.SessionManager) *CustomerHandler {
	return &CustomerHandler{
		customers: customers,
		checkout:  checkout,
		sessions:  sessions,
	}
}

// Search looks up customers in the directory by name or phone
func (h *CustomerHandler) Search(c *gin.Context) {
	results, err := h.customers.Search(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customers retrieved successfully", results)
}

// Create registers a new customer in the directory
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customers.Create(c.Request.Context(), req.Name, req.Phone)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Attach links a customer or guest details to the sale session
func (h *CustomerHandler) Attach(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.AttachCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var customer *entity.Customer
	if req.CustomerID != "" {
		customer = &entity.Customer{
			ID:    req.CustomerID,
			Name:  req.CustomerName,
			Phone: req.CustomerPhone,
			Tier:  req.CustomerTier,
		}
	}

	if err := h.checkout.AttachCustomer(sessionID, customer, req.GuestName, req.GuestPhone); err != nil {
		response.Error(c, err)
		return
	}

	snapshot, err := h.sessions.Snapshot(sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer attached to sale", gin.H{
		"customer":    snapshot.Customer,
		"guest_name":  snapshot.GuestName,
		"guest_phone": snapshot.GuestPhone,
	})
}
