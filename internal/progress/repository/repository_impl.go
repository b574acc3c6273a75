package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/opencampus/opencampus/internal/progress/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindVideo(ctx context.Context, db *gorm.DB, studentID, courseID, videoID snowflake.ID) (*domain.VideoProgress, error) {
	var item domain.VideoProgress
	err := db.WithContext(ctx).
		Where("student_id = ? AND course_id = ? AND video_id = ?", studentID, courseID, videoID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *repo) ListVideos(ctx context.Context, db *gorm.DB, studentID, courseID snowflake.ID) ([]domain.VideoProgress, error) {
	var items []domain.VideoProgress
	err := db.WithContext(ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) SaveVideo(ctx context.Context, db *gorm.DB, progress *domain.VideoProgress) error {
	return db.WithContext(ctx).Save(progress).Error
}

func (r *repo) FindResume(ctx context.Context, db *gorm.DB, studentID, courseID snowflake.ID) (*domain.Resume, error) {
	var item domain.Resume
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

func (r *repo) SaveResume(ctx context.Context, db *gorm.DB, resume *domain.Resume) error {
	return db.WithContext(ctx).Save(resume).Error
}
