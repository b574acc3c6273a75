package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	accountdomain "github.com/opencampus/opencampus/internal/account/domain"
)

func (s *Server) Register(c *gin.Context) {
	var req accountdomain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	account, err := s.accountSvc.Register(c.Request.Context(), accountdomain.RegisterRequest{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": account})
}

func (s *Server) Me(c *gin.Context) {
	account := currentAccount(c)
	c.JSON(http.StatusOK, gin.H{"data": account})
}

func (s *Server) UpdateMe(c *gin.Context) {
	var req accountdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	account, err := s.accountSvc.Update(c.Request.Context(), currentAccountID(c), accountdomain.UpdateRequest{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": account})
}

func (s *Server) SuspendAccount(c *gin.Context) {
	id, ok := parseIDParam(c, "accountId")
	if !ok {
		return
	}

	var req accountdomain.SuspendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	account, err := s.accountSvc.Suspend(c.Request.Context(), id, req.Days)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      account,
		"days_left": account.SuspensionDaysLeft(s.clock.Now()),
	})
}
