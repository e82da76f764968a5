package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Sale-flow errors. All of these are locally recoverable: the cart and
// payment selection are left exactly as the cashier entered them.
var (
	ErrEmptyCart               = &AppError{Code: http.StatusBadRequest, Message: "Cart is empty"}
	ErrOutOfStock              = &AppError{Code: http.StatusConflict, Message: "Product is out of stock"}
	ErrMissingPaymentReference = &AppError{Code: http.StatusUnprocessableEntity, Message: "Payment reference is required for the selected method"}
	ErrBarcodeNotFound         = &AppError{Code: http.StatusNotFound, Message: "No product matches the scanned barcode"}
	ErrBarcodeScanSuperseded   = &AppError{Code: http.StatusConflict, Message: "Barcode scan superseded by a newer scan"}
	ErrSubmissionInProgress    = &AppError{Code: http.StatusConflict, Message: "An order submission is already in flight for this sale"}
	ErrSaleAlreadyCompleted    = &AppError{Code: http.StatusConflict, Message: "This sale has already been completed"}
	ErrSessionNotFound         = &AppError{Code: http.StatusNotFound, Message: "Sale session not found"}
	ErrNoPaymentSelected       = &AppError{Code: http.StatusUnprocessableEntity, Message: "No payment method selected"}
	ErrConfirmationRequired    = &AppError{Code: http.StatusConflict, Message: "Confirmation required to discard cart items"}
)

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized   = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden      = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrInvalidToken   = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewCustomerValidationError reports invalid input to the create-customer
// action. It blocks only that action, never the sale itself.
func NewCustomerValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Customer validation failed",
		Errors:  fieldErrors,
	}
}

// NewOutOfStockError creates an out-of-stock error naming the product.
func NewOutOfStockError(productName string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: productName + " is out of stock",
	}
}

// NewOrderSubmissionError wraps a failed order submission. The upstream may
// already have opened a cash drawer, so this is surfaced loudly and never
// auto-retried beyond the bounded transport retries.
func NewOrderSubmissionError(cause error) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Message: "Order submission failed: " + cause.Error(),
	}
}

// NewUpstreamError reports a failure talking to an upstream service.
func NewUpstreamError(service string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Message: service + " request failed: " + cause.Error(),
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
