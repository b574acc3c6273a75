package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// VideoProgress is one student's position in one course video. Percent is
// clamped to [0,100]; Completed flips at 90 and is derived, never set by
// the caller.
type VideoProgress struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	StudentID     snowflake.ID `gorm:"not null;uniqueIndex:idx_video_progress_key" json:"student_id"`
	CourseID      snowflake.ID `gorm:"not null;uniqueIndex:idx_video_progress_key" json:"course_id"`
	VideoID       snowflake.ID `gorm:"not null;uniqueIndex:idx_video_progress_key" json:"video_id"`
	Percent       float64      `gorm:"not null;default:0" json:"percent"`
	LastTimestamp float64      `gorm:"not null;default:0" json:"last_timestamp"`
	Completed     bool         `gorm:"not null;default:false" json:"completed"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (VideoProgress) TableName() string { return "video_progress" }

// Resume is the per-(student, course) pointer to the most recently watched
// video, kept separately so the player can restore position with one read.
type Resume struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	StudentID     snowflake.ID `gorm:"not null;uniqueIndex:idx_progress_resume_pair" json:"student_id"`
	CourseID      snowflake.ID `gorm:"not null;uniqueIndex:idx_progress_resume_pair" json:"course_id"`
	VideoID       snowflake.ID `gorm:"not null" json:"video_id"`
	LastTimestamp float64      `gorm:"not null;default:0" json:"last_timestamp"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Resume) TableName() string { return "progress_resume" }
