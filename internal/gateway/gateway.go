package gateway

import (
	"context"
	"errors"
)

// Order is the gateway-side record of an intended charge. The payer completes
// checkout against it out-of-band.
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
}

type CreateOrderRequest struct {
	// Amount in minor currency units.
	Amount   int64
	Currency string
	Receipt  string
}

// Client isolates the remote payment gateway behind order creation. Signature
// verification is deliberately NOT part of this interface: it is computed
// locally (see SignatureVerifier) so confirmation never needs an extra
// network round-trip and stays testable offline.
type Client interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (Order, error)
	// KeyID is the public key identifier the checkout UI needs to open the
	// gateway's payment widget.
	KeyID() string
}

var (
	ErrUnavailable   = errors.New("gateway_unavailable")
	ErrInvalidConfig = errors.New("gateway_config_invalid")
)
