package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coursedomain "github.com/opencampus/opencampus/internal/course/domain"
	"github.com/opencampus/opencampus/pkg/db/pagination"
)

func (s *Server) ListCourses(c *gin.Context) {
	var query pagination.Pagination
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.courseSvc.List(c.Request.Context(), coursedomain.ListCoursesRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      resp.Courses,
		"page_info": resp.PageInfo,
	})
}

func (s *Server) GetCourse(c *gin.Context) {
	id, ok := parseIDParam(c, "courseId")
	if !ok {
		return
	}

	course, err := s.courseSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": course})
}
