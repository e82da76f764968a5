package request

// CreateCustomerRequest registers a new customer in the directory.
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// AttachCustomerRequest links a directory customer or freeform guest details
// to the sale. Either the customer fields or the guest fields may be set;
// all empty detaches the customer.
type AttachCustomerRequest struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerTier  string `json:"customer_tier"`
	GuestName     string `json:"guest_name"`
	GuestPhone    string `json:"guest_phone"`
}
