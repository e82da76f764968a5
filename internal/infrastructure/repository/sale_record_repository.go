package repository

import (
	"context"
	"errors"

	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
	domainRepo "github.com/dokanlab/pos-terminal-api/internal/domain/repository"
	"gorm.io/gorm"
)

type saleRecordRepository struct {
	db *gorm.DB
}

// NewSaleRecordRepository creates a new sale record repository
func NewSaleRecordRepository(db *gorm.DB) domainRepo.SaleRecordRepository {
	return &saleRecordRepository{db: db}
}

func (r *saleRecordRepository) Create(ctx context.Context, record *entity.SaleRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *saleRecordRepository) Update(ctx context.Context, record *entity.SaleRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *saleRecordRepository) GetByIdempotencyKey(ctx context.Context, key string) (*entity.SaleRecord, error) {
	var record entity.SaleRecord
	err := r.db.WithContext(ctx).
		Where("idempotency_key = ?", key).
		First(&record).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *saleRecordRepository) List(ctx context.Context, branchID string, params *domainRepo.SaleRecordFilterParams) ([]entity.SaleRecord, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.SaleRecord{}).
		Where("branch_id = ?", branchID)

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []entity.SaleRecord
	err := query.
		Order("created_at DESC").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Find(&records).Error

	return records, total, err
}
