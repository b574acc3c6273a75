package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"

	"github.com/opencampus/opencampus/pkg/db/pagination"
)

type ListCoursesRequest struct {
	PageToken string
	PageSize  int
}

type ListCoursesResponse struct {
	pagination.PageInfo
	Courses []Course `json:"courses"`
}

// Service is the read side of the catalog consumed by enrollment and the
// HTTP layer. Catalog writes happen through seeding, not a public surface.
type Service interface {
	GetByID(ctx context.Context, id snowflake.ID) (Course, error)
	List(ctx context.Context, req ListCoursesRequest) (ListCoursesResponse, error)
	Create(ctx context.Context, course Course) (Course, error)
}

var (
	ErrNotFound        = errors.New("course_not_found")
	ErrInvalidTitle    = errors.New("invalid_title")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrInvalidDiscount = errors.New("invalid_discount")
)
