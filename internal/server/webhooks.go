package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	enrollmentdomain "github.com/opencampus/opencampus/internal/enrollment/domain"
	paymentdomain "github.com/opencampus/opencampus/internal/payment/domain"
)

const headerRazorpaySignature = "X-Razorpay-Signature"

type razorpayWebhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Status  string `json:"status"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleRazorpayWebhook authenticates the delivery with the raw-body HMAC
// and reconciles the referenced payment. The checkout signature scheme does
// not apply here; webhooks are signed over the entire request body.
func (s *Server) HandleRazorpayWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	signature := strings.TrimSpace(c.GetHeader(headerRazorpaySignature))
	if signature == "" || !s.verifier.VerifyWebhook(body, signature) {
		AbortWithError(c, enrollmentdomain.ErrVerificationFailed)
		return
	}

	var event razorpayWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	var captured bool
	switch event.Event {
	case "payment.captured":
		captured = true
	case "payment.failed":
		captured = false
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	err = s.enrollmentSvc.Reconcile(c.Request.Context(), enrollmentdomain.WebhookEvent{
		OrderID:   event.Payload.Payment.Entity.OrderID,
		PaymentID: event.Payload.Payment.Entity.ID,
		Captured:  captured,
	})
	if err != nil {
		// Orders this service never created are acknowledged so the
		// gateway stops redelivering.
		if errors.Is(err, paymentdomain.ErrNotFound) {
			s.log.Warn("webhook for unknown order",
				zap.String("event", event.Event),
				zap.String("order_id", event.Payload.Payment.Entity.OrderID),
			)
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
