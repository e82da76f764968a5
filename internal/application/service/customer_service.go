package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
	"github.com/dokanlab/pos-terminal-api/internal/domain/repository"
	"github.com/dokanlab/pos-terminal-api/pkg/apperror"
)

var phonePattern = regexp.MustCompile(`^\+?\d{6,15}$`)

// CustomerService fronts the upstream customer directory.
type CustomerService struct {
	directory repository.CustomerDirectory
}

// NewCustomerService creates a new customer service
func NewCustomerService(directory repository.CustomerDirectory) *CustomerService {
	return &CustomerService{directory: directory}
}

// Search queries the directory. A blank query returns no matches without
// calling upstream.
func (s *CustomerService) Search(ctx context.Context, query string) ([]entity.Customer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []entity.Customer{}, nil
	}
	return s.directory.Search(ctx, query)
}

// Create registers a new directory customer. Validation failure blocks only
// this action, never the sale.
func (s *CustomerService) Create(ctx context.Context, name, phone string) (*entity.Customer, error) {
	name = strings.TrimSpace(name)
	phone = strings.ReplaceAll(strings.TrimSpace(phone), " ", "")

	var fieldErrors []apperror.FieldError
	if name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if !phonePattern.MatchString(phone) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "phone", Message: "Phone must be 6-15 digits"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewCustomerValidationError(fieldErrors)
	}

	return s.directory.Create(ctx, name, phone)
}
