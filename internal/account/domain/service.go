package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SuspendRequest struct {
	Days int `json:"days"`
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (Account, error)
	GetByID(ctx context.Context, id snowflake.ID) (Account, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateRequest) (Account, error)
	Suspend(ctx context.Context, id snowflake.ID, days int) (Account, error)
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidPassword = errors.New("invalid_password")
	ErrInvalidDays     = errors.New("invalid_days")
	ErrEmailExists     = errors.New("email_exists")
	ErrNotFound        = errors.New("account_not_found")
	ErrSuspended       = errors.New("account_suspended")
)
