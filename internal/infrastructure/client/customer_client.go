package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
	"github.com/dokanlab/pos-terminal-api/pkg/apperror"
)

// CustomerClient talks to the customer directory.
type CustomerClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCustomerClient creates a new customer directory client
func NewCustomerClient(baseURL string, timeout time.Duration) *CustomerClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CustomerClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Search looks up customers by name or phone fragment.
func (c *CustomerClient) Search(ctx context.Context, query string) ([]entity.Customer, error) {
	endpoint := fmt.Sprintf("%s/api/v1/customers?search=%s", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("customers: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.NewUpstreamError("Customer directory", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.NewUpstreamError("Customer directory", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var customers []entity.Customer
	if err := json.NewDecoder(resp.Body).Decode(&customers); err != nil {
		return nil, fmt.Errorf("customers: decode response: %w", err)
	}
	return customers, nil
}

// Create registers a new customer in the directory.
func (c *CustomerClient) Create(ctx context.Context, name, phone string) (*entity.Customer, error) {
	body, err := json.Marshal(map[string]string{"name": name, "phone": phone})
	if err != nil {
		return nil, fmt.Errorf("customers: marshal request: %w", err)
	}

	endpoint := c.baseURL + "/api/v1/customers"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("customers: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.NewUpstreamError("Customer directory", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, apperror.NewUpstreamError("Customer directory", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var customer entity.Customer
	if err := json.NewDecoder(resp.Body).Decode(&customer); err != nil {
		return nil, fmt.Errorf("customers: decode response: %w", err)
	}
	return &customer, nil
}
