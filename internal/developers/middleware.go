package developers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CtxAPIKeyID holds the authenticated key id on public API requests.
const CtxAPIKeyID = "api_key_id"

// RequireAPIKey guards routes with "Authorization: Bearer <api key>".
func RequireAPIKey(keys *KeyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing bearer api key"})
			return
		}

		k, err := keys.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
			return
		}

		c.Set(CtxAPIKeyID, k.ID)
		c.Next()
	}
}

// APIKeyID is the rate-limit bucket key for authenticated requests.
func APIKeyID(c *gin.Context) string {
	return c.GetString(CtxAPIKeyID)
}
