package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/opencampus/opencampus/internal/course/domain"
	"github.com/opencampus/opencampus/pkg/db/pagination"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, course *domain.Course) error {
	return db.WithContext(ctx).Create(course).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Course, error) {
	var item domain.Course
	err := db.WithContext(ctx).
		Preload("Videos", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*domain.Course, error) {
	query := db.WithContext(ctx).Model(&domain.Course{}).Order("created_at ASC, id ASC")

	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		createdAt, err := time.Parse(time.RFC3339, cursor.CreatedAt)
		if err != nil {
			return nil, err
		}
		id, err := snowflake.ParseString(cursor.ID)
		if err != nil {
			return nil, err
		}
		query = query.Where("created_at > ? OR (created_at = ? AND id > ?)", createdAt, createdAt, id)
	}

	// Fetch one extra row so the caller can detect a next page.
	var items []*domain.Course
	if err := query.Limit(page.PageSize + 1).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
