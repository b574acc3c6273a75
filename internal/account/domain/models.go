package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
)

type Account struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	Name           string       `gorm:"not null" json:"name"`
	Email          string       `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash   string       `gorm:"not null" json:"-"`
	Role           string       `gorm:"type:text;not null;default:'student'" json:"role"`
	SuspendedUntil *time.Time   `json:"suspended_until,omitempty"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }

// Suspended reports whether the account is inside a suspension window.
func (a Account) Suspended(now time.Time) bool {
	return a.SuspendedUntil != nil && a.SuspendedUntil.After(now)
}

// SuspensionDaysLeft returns the whole days remaining, rounded up.
func (a Account) SuspensionDaysLeft(now time.Time) int {
	if !a.Suspended(now) {
		return 0
	}
	remaining := a.SuspendedUntil.Sub(now)
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		days++
	}
	return days
}
