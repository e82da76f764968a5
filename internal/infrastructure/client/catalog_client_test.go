package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductByIDConvertsPricesToCents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/pos/products/prod-1", r.URL.Path)
		assert.Equal(t, "main", r.URL.Query().Get("branch"))
		w.Write([]byte(`{
			"id": "prod-1",
			"name": "Oxford Shirt",
			"basePrice": 1200.50,
			"variants": [
				{"sku": "OX-M", "attributes": "M / White", "priceModifier": 100.25, "stock": 4}
			],
			"branchStock": {"inStock": 12, "lowStock": false, "quantity": 12}
		}`))
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, "main", 2*time.Second)
	product, err := client.ProductByID(context.Background(), "prod-1")

	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, int64(120050), product.BasePrice)
	require.Len(t, product.Variants, 1)
	assert.Equal(t, int64(10025), product.Variants[0].PriceModifier)
	assert.Equal(t, 12, product.BranchStock.InStock)
}

func TestProductByIDNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, "main", 2*time.Second)
	product, err := client.ProductByID(context.Background(), "missing")

	require.NoError(t, err, "a missing product is not an error")
	assert.Nil(t, product)
}

func TestLookupBarcodeMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/pos/barcode/880456", r.URL.Path)
		w.Write([]byte(`{
			"product": {"id": "prod-1", "name": "Oxford Shirt", "basePrice": 1200, "branchStock": {"inStock": 12}},
			"variantSku": "OX-M"
		}`))
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, "main", 2*time.Second)
	match, err := client.Lookup(context.Background(), "880456")

	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "prod-1", match.Product.ID)
	assert.Equal(t, "OX-M", match.VariantSKU)
}

func TestLookupNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, "main", 2*time.Second)
	match, err := client.Lookup(context.Background(), "000000")

	require.NoError(t, err)
	assert.Nil(t, match)
}
