package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	StatusCreated = "created"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// PaymentRecord tracks one checkout attempt against the gateway. Amount is
// the course's effective charge at creation time, in minor currency units.
// PaymentID stays empty until the gateway reports a successful capture.
type PaymentRecord struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	StudentID snowflake.ID `gorm:"not null;index:idx_payments_lookup" json:"student_id"`
	CourseID  snowflake.ID `gorm:"not null;index:idx_payments_lookup" json:"course_id"`
	OrderID   string       `gorm:"type:text;not null;uniqueIndex" json:"order_id"`
	PaymentID string       `gorm:"type:text" json:"payment_id,omitempty"`
	Amount    int64        `gorm:"not null" json:"amount"`
	Currency  string       `gorm:"type:text;not null" json:"currency"`
	Status    string       `gorm:"type:text;not null;default:'created'" json:"status"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (PaymentRecord) TableName() string { return "payments" }

var ErrNotFound = errors.New("payment_record_not_found")
