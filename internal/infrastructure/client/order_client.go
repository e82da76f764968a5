package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
	"github.com/dokanlab/pos-terminal-api/pkg/apperror"
)

const (
	submitMaxAttempts  = 3
	submitBaseInterval = 500 * time.Millisecond
)

// OrderClient submits orders and fetches receipt payloads. Transport-level
// retries of one submission reuse the attempt's idempotency key, both in the
// body and in the Idempotency-Key header; the key is never regenerated here.
type OrderClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOrderClient creates a new order client
func NewOrderClient(baseURL string, timeout time.Duration) *OrderClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OrderClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Submit posts the checkout request. Timeouts and 5xx responses are retried
// with exponential backoff up to submitMaxAttempts; 4xx responses are
// returned immediately since retrying cannot help.
func (c *OrderClient) Submit(ctx context.Context, checkout *entity.CheckoutRequest) (*entity.OrderResult, error) {
	body, err := json.Marshal(checkout)
	if err != nil {
		return nil, fmt.Errorf("orders: marshal request: %w", err)
	}

	endpoint := c.baseURL + "/api/v1/orders"
	var lastErr error

	for attempt := 0; attempt < submitMaxAttempts; attempt++ {
		if attempt > 0 {
			backoff := submitBaseInterval << (attempt - 1)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, apperror.NewOrderSubmissionError(ctx.Err())
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("orders: create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", checkout.IdempotencyKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		result, retriable, err := decodeSubmitResponse(resp)
		if err == nil {
			return result, nil
		}
		if !retriable {
			return nil, err
		}
		lastErr = err
	}

	return nil, apperror.NewOrderSubmissionError(lastErr)
}

func decodeSubmitResponse(resp *http.Response) (*entity.OrderResult, bool, error) {
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		var result entity.OrderResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, false, fmt.Errorf("orders: decode response: %w", err)
		}
		return &result, false, nil
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("order endpoint returned %d", resp.StatusCode)
	default:
		raw, _ := io.ReadAll(resp.Body)
		return nil, false, apperror.NewAppError(resp.StatusCode, fmt.Sprintf("Order rejected: %s", string(raw)))
	}
}

// FetchReceipt returns the loosely-typed receipt payload for an order. Some
// backend versions wrap the payload in a data envelope; unwrap it here so
// normalization sees one shape.
func (c *OrderClient) FetchReceipt(ctx context.Context, orderID string) (map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s/api/v1/orders/%s/receipt", c.baseURL, url.PathEscape(orderID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("orders: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.NewUpstreamError("Receipt", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperror.NewUpstreamError("Receipt", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("orders: decode receipt payload: %w", err)
	}

	if data, ok := payload["data"].(map[string]interface{}); ok {
		return data, nil
	}
	return payload, nil
}
