package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"

	coursedomain "github.com/opencampus/opencampus/internal/course/domain"
)

const (
	StatusPending   = "pending"
	StatusEnrolled  = "enrolled"
	StatusCancelled = "cancelled"
)

// Enrollment is the row deciding whether a student has access to a course.
// The (student_id, course_id) pair is unique regardless of status history:
// a cancelled row is rewritten in place on retry, never duplicated.
type Enrollment struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"id"`
	StudentID  snowflake.ID  `gorm:"not null;uniqueIndex:idx_enrollments_pair" json:"student_id"`
	CourseID   snowflake.ID  `gorm:"not null;uniqueIndex:idx_enrollments_pair" json:"course_id"`
	PaymentID  *snowflake.ID `json:"payment_id,omitempty"`
	Status     string        `gorm:"type:text;not null;default:'pending'" json:"status"`
	EnrolledAt *time.Time    `json:"enrolled_at,omitempty"`
	CreatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Course *coursedomain.Course `gorm:"foreignKey:CourseID;references:ID" json:"course,omitempty"`
}

func (Enrollment) TableName() string { return "enrollments" }
