package client

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
	"github.com/dokanlab/pos-terminal-api/internal/domain/repository"
	"github.com/dokanlab/pos-terminal-api/pkg/apperror"
)

// CatalogClient talks to the product/stock catalog provider. It also serves
// barcode lookups, which the catalog resolves to a product+variant pair.
type CatalogClient struct {
	baseURL    string
	branchID   string
	httpClient *http.Client
}

// NewCatalogClient creates a new catalog client
func NewCatalogClient(baseURL, branchID string, timeout time.Duration) *CatalogClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CatalogClient{
		baseURL:    baseURL,
		branchID:   branchID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// productPayload is the catalog's wire shape; prices are decimal.
type productPayload struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	BasePrice   float64            `json:"basePrice"`
	Image       string             `json:"image"`
	Variants    []variantPayload   `json:"variants"`
	BranchStock branchStockPayload `json:"branchStock"`
}

type variantPayload struct {
	SKU           string  `json:"sku"`
	Attributes    string  `json:"attributes"`
	PriceModifier float64 `json:"priceModifier"`
	Stock         int     `json:"stock"`
}

type branchStockPayload struct {
	InStock  int  `json:"inStock"`
	LowStock bool `json:"lowStock"`
	Quantity int  `json:"quantity"`
}

type barcodePayload struct {
	Product    *productPayload `json:"product"`
	VariantSKU string          `json:"variantSku"`
}

// ProductByID fetches a product with this branch's stock position. A 404
// returns (nil, nil).
func (c *CatalogClient) ProductByID(ctx context.Context, id string) (*entity.PosProduct, error) {
	endpoint := fmt.Sprintf("%s/api/v1/pos/products/%s?branch=%s", c.baseURL, url.PathEscape(id), url.QueryEscape(c.branchID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.NewUpstreamError("Catalog", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload productPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("catalog: decode product: %w", err)
		}
		return payload.toEntity(), nil
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, apperror.NewUpstreamError("Catalog", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
}

// Lookup resolves a scanned barcode. A 404 returns (nil, nil).
func (c *CatalogClient) Lookup(ctx context.Context, code string) (*repository.BarcodeMatch, error) {
	endpoint := fmt.Sprintf("%s/api/v1/pos/barcode/%s?branch=%s", c.baseURL, url.PathEscape(code), url.QueryEscape(c.branchID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.NewUpstreamError("Barcode lookup", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload barcodePayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("catalog: decode barcode match: %w", err)
		}
		if payload.Product == nil {
			return nil, nil
		}
		return &repository.BarcodeMatch{
			Product:    payload.Product.toEntity(),
			VariantSKU: payload.VariantSKU,
		}, nil
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, apperror.NewUpstreamError("Barcode lookup", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
}

func (p *productPayload) toEntity() *entity.PosProduct {
	product := &entity.PosProduct{
		ID:        p.ID,
		Name:      p.Name,
		BasePrice: toCents(p.BasePrice),
		Image:     p.Image,
		BranchStock: entity.BranchStock{
			InStock:  p.BranchStock.InStock,
			LowStock: p.BranchStock.LowStock,
			Quantity: p.BranchStock.Quantity,
		},
	}
	for _, v := range p.Variants {
		product.Variants = append(product.Variants, entity.ProductVariant{
			SKU:           v.SKU,
			Attributes:    v.Attributes,
			PriceModifier: toCents(v.PriceModifier),
			Stock:         v.Stock,
		})
	}
	return product
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
