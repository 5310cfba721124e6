package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// RazorpayClient talks to the Razorpay Orders API. Requests authenticate
// with basic auth (key id / key secret); the secret also signs payment
// callbacks, see signature.go.
type RazorpayClient struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
	logger    *log.Logger
}

func NewRazorpay(baseURL, keyID, keySecret string, timeout time.Duration, logger *log.Logger) *RazorpayClient {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RazorpayClient{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		client:    &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

type createOrderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
}

type createOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Error    *struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error,omitempty"`
}

func (c *RazorpayClient) CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receipt string) (*GatewayOrder, error) {
	payload := createOrderRequest{
		Amount:         amountMinorUnits,
		Currency:       currency,
		Receipt:        receipt,
		PaymentCapture: 1,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Printf("gateway: create order receipt=%s error=%v", receipt, err)
		return nil, fmt.Errorf("gateway request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}

	var out createOrderResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode gateway response (%d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != nil {
			return nil, fmt.Errorf("gateway rejected order (%d): %s", resp.StatusCode, out.Error.Description)
		}
		return nil, fmt.Errorf("gateway rejected order (%d)", resp.StatusCode)
	}
	if out.ID == "" {
		return nil, fmt.Errorf("gateway returned empty order id")
	}

	c.logger.Printf("gateway: order created id=%s amount=%d currency=%s", out.ID, out.Amount, out.Currency)
	return &GatewayOrder{
		ID:       out.ID,
		Amount:   out.Amount,
		Currency: out.Currency,
		Receipt:  out.Receipt,
	}, nil
}
