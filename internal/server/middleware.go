package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	accountdomain "github.com/opencampus/opencampus/internal/account/domain"
)

// HeaderAccount carries the authenticated account id, set by the upstream
// auth proxy. This service trusts it and never issues tokens itself.
const (
	HeaderAccount        = "X-Account-ID"
	contextAccountIDKey  = "account_id"
	contextAccountCtxKey = "account"
)

// IdentityRequired resolves the calling account and rejects suspended ones.
func (s *Server) IdentityRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderAccount))
		if raw == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		id, err := snowflake.ParseString(raw)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		account, err := s.accountSvc.GetByID(c.Request.Context(), id)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if account.Suspended(s.clock.Now()) {
			AbortWithError(c, accountdomain.ErrSuspended)
			return
		}

		c.Set(contextAccountIDKey, id)
		c.Set(contextAccountCtxKey, account)
		c.Next()
	}
}

func currentAccountID(c *gin.Context) snowflake.ID {
	v, ok := c.Get(contextAccountIDKey)
	if !ok {
		return 0
	}
	id, _ := v.(snowflake.ID)
	return id
}

func currentAccount(c *gin.Context) accountdomain.Account {
	v, ok := c.Get(contextAccountCtxKey)
	if !ok {
		return accountdomain.Account{}
	}
	account, _ := v.(accountdomain.Account)
	return account
}
