// Package payment wraps the external payment gateway. Only the order-creation
// contract is modelled; verification and capture live entirely on the
// gateway's side.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type OrderRequest struct {
	Amount   int64             `json:"amount"` // smallest currency unit (paise)
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type IClient interface {
	KeyID() string
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
}

type RazorpayClient struct {
	keyID     string
	keySecret string
	baseURL   string
	httpc     *http.Client
}

var _ IClient = (*RazorpayClient)(nil)

func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   "https://api.razorpay.com",
		httpc:     &http.Client{Timeout: 15 * time.Second},
	}
}

// NewRazorpayClientWithBaseURL exists for tests pointing at a stub server.
func NewRazorpayClientWithBaseURL(keyID, keySecret, baseURL string) *RazorpayClient {
	c := NewRazorpayClient(keyID, keySecret)
	c.baseURL = baseURL
	return c
}

func (c *RazorpayClient) KeyID() string { return c.keyID }

func (c *RazorpayClient) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if c.keyID == "" || c.keySecret == "" {
		return nil, fmt.Errorf("razorpay keys not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(c.keyID, c.keySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("razorpay request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("razorpay order create: status %d: %s", resp.StatusCode, string(b))
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("decode razorpay response: %w", err)
	}
	return &order, nil
}
