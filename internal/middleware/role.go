package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yeyakmania/booking-api/internal/httperr"
)

// RequireRole checks the primary role carried by the token. Handlers still
// check ownership of every record they touch.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserRole) != role {
			code := role + "_only"
			httperr.Write(c, httperr.StatusFor(httperr.KindForbidden), code, httperr.Message(code))
			return
		}
		c.Next()
	}
}
