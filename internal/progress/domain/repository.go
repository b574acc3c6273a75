package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	FindVideo(ctx context.Context, db *gorm.DB, studentID, courseID, videoID snowflake.ID) (*VideoProgress, error)
	ListVideos(ctx context.Context, db *gorm.DB, studentID, courseID snowflake.ID) ([]VideoProgress, error)
	SaveVideo(ctx context.Context, db *gorm.DB, progress *VideoProgress) error
	FindResume(ctx context.Context, db *gorm.DB, studentID, courseID snowflake.ID) (*Resume, error)
	SaveResume(ctx context.Context, db *gorm.DB, resume *Resume) error
}
