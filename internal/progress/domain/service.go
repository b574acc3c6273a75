package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type UpdateRequest struct {
	StudentID     snowflake.ID
	CourseID      snowflake.ID
	VideoID       snowflake.ID
	Percent       float64
	LastTimestamp float64
}

// VideoView is one course video merged with whatever progress the student
// has on it; videos never watched report zeros.
type VideoView struct {
	VideoID       snowflake.ID `json:"video_id"`
	Title         string       `json:"title"`
	URL           string       `json:"url"`
	Position      int          `json:"position"`
	Percent       float64      `json:"percent"`
	LastTimestamp float64      `json:"last_timestamp"`
	Completed     bool         `json:"completed"`
}

type ResumeView struct {
	VideoID       snowflake.ID `json:"video_id"`
	LastTimestamp float64      `json:"last_timestamp"`
}

type CourseProgress struct {
	CourseID        snowflake.ID `json:"course_id"`
	Videos          []VideoView  `json:"videos"`
	CompletedVideos int          `json:"completed_videos"`
	CourseCompleted bool         `json:"course_completed"`
	Resume          *ResumeView  `json:"resume,omitempty"`
}

type Service interface {
	// Update records a playback position and returns the refreshed course
	// view so the player needs no second round-trip.
	Update(ctx context.Context, req UpdateRequest) (CourseProgress, error)
	Get(ctx context.Context, studentID, courseID snowflake.ID) (CourseProgress, error)
}

var (
	ErrInvalidInput  = errors.New("invalid_input")
	ErrVideoNotFound = errors.New("video_not_found")
)
