package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *PaymentRecord) error
	// Find retrieves the record for (orderID, studentID, courseID). The
	// triple lookup guards signature replay against an unrelated order.
	Find(ctx context.Context, db *gorm.DB, orderID string, studentID, courseID snowflake.ID) (*PaymentRecord, error)
	FindByOrderID(ctx context.Context, db *gorm.DB, orderID string) (*PaymentRecord, error)
	Save(ctx context.Context, db *gorm.DB, record *PaymentRecord) error
	ListByStudentAndCourse(ctx context.Context, db *gorm.DB, studentID, courseID snowflake.ID) ([]*PaymentRecord, error)
}
