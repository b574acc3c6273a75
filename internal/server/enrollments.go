package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	enrollmentdomain "github.com/opencampus/opencampus/internal/enrollment/domain"
)

type initiateEnrollmentRequest struct {
	CourseID string `json:"course_id"`
}

func (s *Server) InitiateEnrollment(c *gin.Context) {
	var req initiateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	courseID, ok := parseID(c, req.CourseID)
	if !ok {
		return
	}

	result, err := s.enrollmentSvc.Initiate(c.Request.Context(), enrollmentdomain.InitiateRequest{
		StudentID: currentAccountID(c),
		CourseID:  courseID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if result.Enrolled != nil {
		c.JSON(http.StatusCreated, gin.H{"data": result})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

type verifyEnrollmentRequest struct {
	CourseID  string `json:"course_id"`
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

func (s *Server) VerifyEnrollment(c *gin.Context) {
	var req verifyEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	courseID, ok := parseID(c, req.CourseID)
	if !ok {
		return
	}

	err := s.enrollmentSvc.Confirm(c.Request.Context(), enrollmentdomain.ConfirmRequest{
		OrderID:   strings.TrimSpace(req.OrderID),
		PaymentID: strings.TrimSpace(req.PaymentID),
		Signature: strings.TrimSpace(req.Signature),
		StudentID: currentAccountID(c),
		CourseID:  courseID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "enrolled"})
}

type abandonEnrollmentRequest struct {
	CourseID string `json:"course_id"`
	OrderID  string `json:"razorpay_order_id"`
}

func (s *Server) AbandonEnrollment(c *gin.Context) {
	var req abandonEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	courseID, ok := parseID(c, req.CourseID)
	if !ok {
		return
	}

	err := s.enrollmentSvc.Abandon(c.Request.Context(), enrollmentdomain.AbandonRequest{
		OrderID:   strings.TrimSpace(req.OrderID),
		StudentID: currentAccountID(c),
		CourseID:  courseID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

func (s *Server) MyCourses(c *gin.Context) {
	enrollments, err := s.enrollmentSvc.ListMine(c.Request.Context(), currentAccountID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": enrollments})
}
