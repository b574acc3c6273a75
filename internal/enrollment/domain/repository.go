package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, enrollment *Enrollment) error
	// FindByPair returns the enrollment row for (student, course) in any
	// status, or nil. The unique index guarantees at most one.
	FindByPair(ctx context.Context, db *gorm.DB, studentID, courseID snowflake.ID) (*Enrollment, error)
	FindByPairAndStatus(ctx context.Context, db *gorm.DB, studentID, courseID snowflake.ID, status string) (*Enrollment, error)
	Save(ctx context.Context, db *gorm.DB, enrollment *Enrollment) error
	// CancelIfPending flips pending to cancelled as a conditional update so
	// a writer losing the race against a confirmed payment no-ops instead
	// of clobbering it. Reports whether a row was changed.
	CancelIfPending(ctx context.Context, db *gorm.DB, studentID, courseID snowflake.ID) (bool, error)
	ListByStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID) ([]Enrollment, error)
}
