package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/opencampus/opencampus/pkg/db/pagination"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, course *Course) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Course, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*Course, error)
}
