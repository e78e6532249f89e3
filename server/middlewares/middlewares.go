package middlewares

import (
	"net/http"
	"strings"

	"github.com/devworkshq/devworks/auth"
	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key under which JWT() stores the verified
// caller id.
const UserIDKey = "userID"

// JWT verifies the bearer token on every request it guards and binds the
// resolved user id into the context. Signature and expiry failures both
// collapse to a generic 401: internal verification detail never reaches the
// caller.
func JWT(manager *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "access denied"})
			return
		}

		userID, err := manager.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "access denied"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// bearerToken accepts both the Authorization Bearer scheme and the legacy
// x-auth-token header.
func bearerToken(c *gin.Context) string {
	if authz := c.GetHeader("Authorization"); authz != "" {
		return strings.TrimPrefix(authz, "Bearer ")
	}
	return c.GetHeader("x-auth-token")
}

// CallerID returns the user id bound by JWT. It must only be called on
// routes behind the middleware.
func CallerID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
