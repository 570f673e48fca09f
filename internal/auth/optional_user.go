package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// OptionalUser sets a uid in context without enforcing auth.
// X-User-Id and X-User-Email override the demo identity.
// Use this ONLY for development/testing.
func OptionalUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if uid == "" {
			uid = DemoAdminUID
		}
		c.Set(CtxFirebaseUID, uid)
		if email := strings.TrimSpace(c.GetHeader("X-User-Email")); email != "" {
			c.Set(CtxEmail, email)
		}
		c.Next()
	}
}
