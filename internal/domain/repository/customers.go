package repository

import (
	"context"

	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
)

// CustomerDirectory is the upstream customer lookup/registration service.
type CustomerDirectory interface {
	Search(ctx context.Context, query string) ([]entity.Customer, error)
	Create(ctx context.Context, name, phone string) (*entity.Customer, error)
}
