package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	progressdomain "github.com/opencampus/opencampus/internal/progress/domain"
)

type updateProgressRequest struct {
	CourseID      string  `json:"course_id"`
	VideoID       string  `json:"video_id"`
	Percent       float64 `json:"percent"`
	LastTimestamp float64 `json:"last_timestamp"`
}

func (s *Server) UpdateProgress(c *gin.Context) {
	var req updateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	courseID, ok := parseID(c, req.CourseID)
	if !ok {
		return
	}
	videoID, ok := parseID(c, req.VideoID)
	if !ok {
		return
	}

	result, err := s.progressSvc.Update(c.Request.Context(), progressdomain.UpdateRequest{
		StudentID:     currentAccountID(c),
		CourseID:      courseID,
		VideoID:       videoID,
		Percent:       req.Percent,
		LastTimestamp: req.LastTimestamp,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) GetProgress(c *gin.Context) {
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return
	}

	result, err := s.progressSvc.Get(c.Request.Context(), currentAccountID(c), courseID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
