package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opencampus/opencampus/internal/gateway"
)

// Config carries the Razorpay credentials. KeyID/Secret authenticate the
// orders API via basic auth.
type Config struct {
	BaseURL string
	KeyID   string
	Secret  string
}

type Client struct {
	baseURL string
	keyID   string
	secret  string
	http    *http.Client
	log     *zap.Logger
}

func New(cfg Config, log *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.KeyID) == "" || strings.TrimSpace(cfg.Secret) == "" {
		return nil, gateway.ErrInvalidConfig
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.razorpay.com"
	}

	return &Client{
		baseURL: baseURL,
		keyID:   cfg.KeyID,
		secret:  cfg.Secret,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log.Named("gateway.razorpay"),
	}, nil
}

func (c *Client) KeyID() string {
	return c.keyID
}

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder registers the intended charge with Razorpay. Any transport or
// non-2xx failure surfaces as gateway.ErrUnavailable; the caller must not
// have written anything yet.
func (c *Client) CreateOrder(ctx context.Context, req gateway.CreateOrderRequest) (gateway.Order, error) {
	receipt := req.Receipt
	if receipt == "" {
		// Razorpay caps receipts at 40 characters.
		receipt = "rcpt_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:32]
	}

	body, err := json.Marshal(orderRequest{
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  receipt,
	})
	if err != nil {
		return gateway.Order{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return gateway.Order{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.keyID, c.secret)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Warn("order creation failed", zap.Error(err))
		return gateway.Order{}, fmt.Errorf("%w: %v", gateway.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("order creation rejected", zap.Int("status", resp.StatusCode))
		return gateway.Order{}, fmt.Errorf("%w: status %d", gateway.ErrUnavailable, resp.StatusCode)
	}

	var parsed orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return gateway.Order{}, fmt.Errorf("%w: %v", gateway.ErrUnavailable, err)
	}
	if strings.TrimSpace(parsed.ID) == "" {
		return gateway.Order{}, fmt.Errorf("%w: empty order id", gateway.ErrUnavailable)
	}

	return gateway.Order{
		ID:       parsed.ID,
		Amount:   parsed.Amount,
		Currency: parsed.Currency,
		Receipt:  parsed.Receipt,
	}, nil
}
