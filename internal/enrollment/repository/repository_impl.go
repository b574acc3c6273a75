package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/opencampus/opencampus/internal/enrollment/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, enrollment *domain.Enrollment) error {
	return db.WithContext(ctx).Create(enrollment).Error
}

func (r *repo) FindByPair(ctx context.Context, db *gorm.DB, studentID, courseID snowflake.ID) (*domain.Enrollment, error) {
	var item domain.Enrollment
	err := db.WithContext(ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *repo) FindByPairAndStatus(ctx context.Context, db *gorm.DB, studentID, courseID snowflake.ID, status string) (*domain.Enrollment, error) {
	var item domain.Enrollment
	err := db.WithContext(ctx).
		Where("student_id = ? AND course_id = ? AND status = ?", studentID, courseID, status).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, enrollment *domain.Enrollment) error {
	return db.WithContext(ctx).Save(enrollment).Error
}

func (r *repo) CancelIfPending(ctx context.Context, db *gorm.DB, studentID, courseID snowflake.ID) (bool, error) {
	res := db.WithContext(ctx).Model(&domain.Enrollment{}).
		Where("student_id = ? AND course_id = ? AND status = ?", studentID, courseID, domain.StatusPending).
		Updates(map[string]any{
			"status":     domain.StatusCancelled,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) ListByStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID) ([]domain.Enrollment, error) {
	var items []domain.Enrollment
	err := db.WithContext(ctx).
		Preload("Course").
		Preload("Course.Videos", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
