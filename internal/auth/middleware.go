package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const contextClaimsKey = "auth_claims"

// Required verifies "Authorization: Bearer <jwt>" and puts the claims
// into the gin context. There is no fallback identity: requests without
// a valid token never reach the business logic.
func Required(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Missing token"})
			return
		}

		claims, err := ParseToken(secret, strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Invalid or expired token"})
			return
		}

		c.Set(contextClaimsKey, claims)
		c.Next()
	}
}

// CurrentClaims returns the claims set by Required, or nil.
func CurrentClaims(c *gin.Context) *Claims {
	v, ok := c.Get(contextClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}

// CurrentUserID returns the authenticated user id. The second return is
// false when the middleware did not run (programming error, not a
// client condition).
func CurrentUserID(c *gin.Context) (uint, bool) {
	claims := CurrentClaims(c)
	if claims == nil {
		return 0, false
	}
	return claims.UserID, true
}
