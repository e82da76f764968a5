package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
	"github.com/dokanlab/pos-terminal-api/pkg/apperror"
)

func checkoutRequest() *entity.CheckoutRequest {
	return &entity.CheckoutRequest{
		Items:          []entity.CheckoutItem{{ProductID: "prod-2", Quantity: 2, UnitPrice: 350}},
		BranchID:       "main",
		IdempotencyKey: "11111111-2222-3333-4444-555555555555",
		Source:         "pos",
	}
}

func TestSubmitSendsIdempotencyKey(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"orderId":"ord-77","orderNumber":"INV-2031"}`))
	}))
	defer server.Close()

	client := NewOrderClient(server.URL, 2*time.Second)
	result, err := client.Submit(context.Background(), checkoutRequest())

	require.NoError(t, err)
	assert.Equal(t, "ord-77", result.OrderID)
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", gotKey)
}

func TestSubmitRetriesReuseKey(t *testing.T) {
	var keys []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		if len(keys) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"orderId":"ord-77","orderNumber":"INV-2031"}`))
	}))
	defer server.Close()

	client := NewOrderClient(server.URL, 2*time.Second)
	result, err := client.Submit(context.Background(), checkoutRequest())

	require.NoError(t, err)
	assert.Equal(t, "INV-2031", result.OrderNumber)
	require.Len(t, keys, 3)
	assert.Equal(t, keys[0], keys[1], "transport retries must reuse the attempt's key")
	assert.Equal(t, keys[0], keys[2])
}

func TestSubmitGivesUpAfterMaxAttempts(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewOrderClient(server.URL, 2*time.Second)
	_, err := client.Submit(context.Background(), checkoutRequest())

	require.Error(t, err)
	assert.Equal(t, 502, apperror.GetAppError(err).Code)
	assert.Equal(t, submitMaxAttempts, attempts)
}

func TestSubmitDoesNotRetryClientErrors(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"insufficient stock"}`))
	}))
	defer server.Close()

	client := NewOrderClient(server.URL, 2*time.Second)
	_, err := client.Submit(context.Background(), checkoutRequest())

	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
	assert.Equal(t, 1, attempts, "4xx responses are not retried")
}

func TestFetchReceiptUnwrapsDataEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/orders/ord-77/receipt", r.URL.Path)
		w.Write([]byte(`{"data":{"orderNumber":"INV-2031","total":600}}`))
	}))
	defer server.Close()

	client := NewOrderClient(server.URL, 2*time.Second)
	payload, err := client.FetchReceipt(context.Background(), "ord-77")

	require.NoError(t, err)
	assert.Equal(t, "INV-2031", payload["orderNumber"])
	assert.Equal(t, 600.0, payload["total"])
}

func TestFetchReceiptPlainPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"orderNumber":"INV-2031"}`))
	}))
	defer server.Close()

	client := NewOrderClient(server.URL, 2*time.Second)
	payload, err := client.FetchReceipt(context.Background(), "ord-77")

	require.NoError(t, err)
	assert.Equal(t, "INV-2031", payload["orderNumber"])
}

func TestFetchReceiptNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewOrderClient(server.URL, 2*time.Second)
	_, err := client.FetchReceipt(context.Background(), "missing")

	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
