package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type InitiateRequest struct {
	StudentID snowflake.ID
	CourseID  snowflake.ID
}

// PaymentIntent is what the checkout UI needs to collect a payment for an
// order the gateway already knows about.
type PaymentIntent struct {
	OrderID    string `json:"order_id"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	GatewayKey string `json:"gateway_key"`
}

// InitiateResult is either an immediate enrollment (free course) or a
// payment intent the caller must complete out-of-band.
type InitiateResult struct {
	Enrolled        *Enrollment    `json:"enrolled,omitempty"`
	PaymentRequired *PaymentIntent `json:"payment_required,omitempty"`
}

type ConfirmRequest struct {
	OrderID   string
	PaymentID string
	Signature string
	StudentID snowflake.ID
	CourseID  snowflake.ID
}

type AbandonRequest struct {
	OrderID   string
	CourseID  snowflake.ID
	StudentID snowflake.ID
}

// WebhookEvent classifies a transport-verified gateway notification.
type WebhookEvent struct {
	OrderID   string
	PaymentID string
	Captured  bool
}

// Service is the enrollment state machine. Each operation is a single
// logical transaction triggered synchronously by an inbound request.
type Service interface {
	Initiate(ctx context.Context, req InitiateRequest) (InitiateResult, error)
	Confirm(ctx context.Context, req ConfirmRequest) error
	Abandon(ctx context.Context, req AbandonRequest) error
	Reconcile(ctx context.Context, event WebhookEvent) error
	ListMine(ctx context.Context, studentID snowflake.ID) ([]Enrollment, error)
}

var (
	ErrAlreadyEnrolled    = errors.New("already_enrolled")
	ErrInvalidInput       = errors.New("invalid_input")
	ErrVerificationFailed = errors.New("payment_verification_failed")
)
