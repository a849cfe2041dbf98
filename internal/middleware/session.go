package middleware

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/academy-crm/pkg/errors"
	"github.com/noah-isme/academy-crm/pkg/response"
)

type tokenHolder interface {
	Token() string
}

// RequireSession rejects requests while no operator is logged in. The gateway holds one
// session for every caller, so there is no per-request credential to check; services read
// the token again when they call the academy API.
func RequireSession(holder tokenHolder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if holder.Token() == "" {
			response.Error(c, appErrors.ErrSessionRequired)
			c.Abort()
			return
		}
		c.Next()
	}
}
