package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	accountdomain "github.com/opencampus/opencampus/internal/account/domain"
	coursedomain "github.com/opencampus/opencampus/internal/course/domain"
	enrollmentdomain "github.com/opencampus/opencampus/internal/enrollment/domain"
	"github.com/opencampus/opencampus/internal/gateway"
	paymentdomain "github.com/opencampus/opencampus/internal/payment/domain"
	progressdomain "github.com/opencampus/opencampus/internal/progress/domain"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid_request")
)

// ErrorHandlingMiddleware turns the last gin error into the JSON envelope.
// Handlers push domain errors with AbortWithError and never write status
// codes for failures themselves.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case errors.Is(err, enrollmentdomain.ErrVerificationFailed):
		return http.StatusBadRequest, errorPayload{
			Type:    "payment_verification_failed",
			Message: "payment verification failed",
		}
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, accountdomain.ErrSuspended):
		return http.StatusForbidden, errorPayload{
			Type:    "account_suspended",
			Message: "account is suspended",
		}
	case errors.Is(err, enrollmentdomain.ErrAlreadyEnrolled):
		return http.StatusConflict, errorPayload{
			Type:    "already_enrolled",
			Message: "student is already enrolled in this course",
		}
	case errors.Is(err, accountdomain.ErrEmailExists):
		return http.StatusConflict, errorPayload{
			Type:    "email_exists",
			Message: "an account with this email already exists",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: err.Error(),
		}
	case errors.Is(err, gateway.ErrUnavailable):
		return http.StatusBadGateway, errorPayload{
			Type:    "gateway_unavailable",
			Message: "payment gateway is unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, enrollmentdomain.ErrInvalidInput),
		errors.Is(err, progressdomain.ErrInvalidInput),
		errors.Is(err, accountdomain.ErrInvalidName),
		errors.Is(err, accountdomain.ErrInvalidEmail),
		errors.Is(err, accountdomain.ErrInvalidPassword),
		errors.Is(err, accountdomain.ErrInvalidDays),
		errors.Is(err, coursedomain.ErrInvalidTitle),
		errors.Is(err, coursedomain.ErrInvalidPrice),
		errors.Is(err, coursedomain.ErrInvalidDiscount):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, accountdomain.ErrNotFound),
		errors.Is(err, coursedomain.ErrNotFound),
		errors.Is(err, paymentdomain.ErrNotFound),
		errors.Is(err, progressdomain.ErrVideoNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

// classifyErrorForLog labels request-log lines with a stable error code.
func classifyErrorForLog(err error) string {
	status, payload := mapError(err)
	if status >= 500 {
		return "internal_error"
	}
	return payload.Type
}
