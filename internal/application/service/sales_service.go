package service

import (
	"context"

	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
	"github.com/dokanlab/pos-terminal-api/internal/domain/repository"
	"github.com/dokanlab/pos-terminal-api/pkg/pagination"
)

// SalesService exposes the local sale journal for end-of-day browsing.
type SalesService struct {
	records repository.SaleRecordRepository
}

// NewSalesService creates a new sales service
func NewSalesService(records repository.SaleRecordRepository) *SalesService {
	return &SalesService{records: records}
}

// ListSales lists journaled submission attempts for a branch.
func (s *SalesService) ListSales(ctx context.Context, branchID string, params *repository.SaleRecordFilterParams) (*pagination.PaginatedResult[entity.SaleRecord], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	records, total, err := s.records.List(ctx, branchID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(records, pag), nil
}
