package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
	"github.com/dokanlab/pos-terminal-api/internal/domain/enum"
	"github.com/dokanlab/pos-terminal-api/pkg/apperror"
)

// PaymentMethodClient fetches the generic payment-method configuration.
type PaymentMethodClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPaymentMethodClient creates a new payment-method client
func NewPaymentMethodClient(baseURL string, timeout time.Duration) *PaymentMethodClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PaymentMethodClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type paymentMethodPayload struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Provider     string `json:"provider"`
	Name         string `json:"name"`
	WalletNumber string `json:"walletNumber"`
	IsActive     bool   `json:"isActive"`
}

// List fetches the configured payment methods.
func (c *PaymentMethodClient) List(ctx context.Context) ([]entity.PaymentMethodConfig, error) {
	endpoint := c.baseURL + "/api/v1/payment-methods"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("payment methods: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.NewUpstreamError("Payment methods", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.NewUpstreamError("Payment methods", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var payloads []paymentMethodPayload
	if err := json.NewDecoder(resp.Body).Decode(&payloads); err != nil {
		return nil, fmt.Errorf("payment methods: decode response: %w", err)
	}

	configs := make([]entity.PaymentMethodConfig, 0, len(payloads))
	for _, p := range payloads {
		configs = append(configs, entity.PaymentMethodConfig{
			ID:           p.ID,
			Type:         enum.PaymentType(p.Type),
			Provider:     p.Provider,
			Name:         p.Name,
			WalletNumber: p.WalletNumber,
			IsActive:     p.IsActive,
		})
	}
	return configs, nil
}
