package service

import (
	"context"
	"errors"

	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
	"github.com/dokanlab/pos-terminal-api/internal/domain/repository"
)

// In-memory stand-ins for the upstream providers.

type fakeCatalog struct {
	products map[string]*entity.PosProduct
	barcodes map[string]*repository.BarcodeMatch

	// onLookup runs during Lookup, after the sequence number was issued but
	// before the result is applied. Used to interleave overlapping scans.
	onLookup func(code string)
}

func (f *fakeCatalog) ProductByID(ctx context.Context, id string) (*entity.PosProduct, error) {
	return f.products[id], nil
}

func (f *fakeCatalog) Lookup(ctx context.Context, code string) (*repository.BarcodeMatch, error) {
	if f.onLookup != nil {
		f.onLookup(code)
	}
	return f.barcodes[code], nil
}

type fakePaymentProvider struct {
	configs []entity.PaymentMethodConfig
	err     error
	calls   int
}

func (f *fakePaymentProvider) List(ctx context.Context) ([]entity.PaymentMethodConfig, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.configs, nil
}

type fakeOrderGateway struct {
	result   *entity.OrderResult
	err      error
	requests []*entity.CheckoutRequest
	receipts map[string]map[string]interface{}
}

func (f *fakeOrderGateway) Submit(ctx context.Context, req *entity.CheckoutRequest) (*entity.OrderResult, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeOrderGateway) FetchReceipt(ctx context.Context, orderID string) (map[string]interface{}, error) {
	payload, ok := f.receipts[orderID]
	if !ok {
		return nil, errors.New("no receipt for order " + orderID)
	}
	return payload, nil
}

type fakeSaleRecords struct {
	created []*entity.SaleRecord
	updated []*entity.SaleRecord
}

func (f *fakeSaleRecords) Create(ctx context.Context, record *entity.SaleRecord) error {
	f.created = append(f.created, record)
	return nil
}

func (f *fakeSaleRecords) Update(ctx context.Context, record *entity.SaleRecord) error {
	f.updated = append(f.updated, record)
	return nil
}

func (f *fakeSaleRecords) GetByIdempotencyKey(ctx context.Context, key string) (*entity.SaleRecord, error) {
	for _, record := range f.created {
		if record.IdempotencyKey == key {
			return record, nil
		}
	}
	return nil, nil
}

func (f *fakeSaleRecords) List(ctx context.Context, branchID string, params *repository.SaleRecordFilterParams) ([]entity.SaleRecord, int64, error) {
	records := make([]entity.SaleRecord, 0, len(f.created))
	for _, record := range f.created {
		if record.BranchID == branchID {
			records = append(records, *record)
		}
	}
	return records, int64(len(records)), nil
}

type fakePublisher struct {
	events []repository.SaleCompletedEvent
}

func (f *fakePublisher) PublishSaleCompleted(event repository.SaleCompletedEvent) error {
	f.events = append(f.events, event)
	return nil
}

func confirmYes() Confirmer { return ConfirmerFunc(func(string) bool { return true }) }
func confirmNo() Confirmer  { return ConfirmerFunc(func(string) bool { return false }) }

func shirtProduct() *entity.PosProduct {
	return &entity.PosProduct{
		ID:        "prod-1",
		Name:      "Oxford Shirt",
		BasePrice: 120000,
		Variants: []entity.ProductVariant{
			{SKU: "OX-M", Attributes: "M / White", PriceModifier: 0, Stock: 4},
			{SKU: "OX-L", Attributes: "L / White", PriceModifier: 10000, Stock: 0},
		},
		BranchStock: entity.BranchStock{InStock: 12, Quantity: 12},
	}
}

func mugProduct() *entity.PosProduct {
	return &entity.PosProduct{
		ID:          "prod-2",
		Name:        "Ceramic Mug",
		BasePrice:   35000,
		BranchStock: entity.BranchStock{InStock: 3, Quantity: 3},
	}
}

func soldOutProduct() *entity.PosProduct {
	return &entity.PosProduct{
		ID:          "prod-3",
		Name:        "Limited Poster",
		BasePrice:   50000,
		BranchStock: entity.BranchStock{InStock: 0},
	}
}
