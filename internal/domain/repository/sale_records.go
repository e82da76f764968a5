package repository

import (
	"context"
	"time"

	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
	"github.com/dokanlab/pos-terminal-api/internal/domain/enum"
	"github.com/dokanlab/pos-terminal-api/pkg/pagination"
)

// SaleRecordFilterParams filters the sale journal listing.
type SaleRecordFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.SaleStatus
	StartDate  *time.Time
	EndDate    *time.Time
}

// SaleRecordRepository is the local journal of submission attempts.
type SaleRecordRepository interface {
	Create(ctx context.Context, record *entity.SaleRecord) error
	Update(ctx context.Context, record *entity.SaleRecord) error
	GetByIdempotencyKey(ctx context.Context, key string) (*entity.SaleRecord, error)
	List(ctx context.Context, branchID string, params *SaleRecordFilterParams) ([]entity.SaleRecord, int64, error)
}
