package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/service-booking/utils"
)

// Context keys set by AdminAuthMiddleware.
const (
	ContextAdminID     = "admin_id"
	ContextAdminClaims = "admin_claims"
	ContextToken       = "access_token"
)

func AdminAuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if authHeader == "" || tokenString == "" {
			utils.AbortWithError(c, utils.Unauthorized("Unauthorized. Access token is missing."))
			return
		}

		// Validasi format token
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.AbortWithError(c, utils.Unauthorized("Unauthorized. Access token is invalid."))
			return
		}

		claims, err := tokens.ParseToken(tokenString)
		if err != nil {
			utils.AbortWithError(c, utils.Unauthorized("Unauthorized. Access token is invalid."))
			return
		}

		c.Set(ContextAdminID, claims.AdminID)
		c.Set(ContextAdminClaims, claims)
		c.Set(ContextToken, tokenString)
		c.Next()
	}
}
