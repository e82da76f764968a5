package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dokanlab/pos-terminal-api/internal/presentation/http/dto/response"
	"github.com/dokanlab/pos-terminal-api/pkg/utils"
)

// AuthMiddleware verifies the cashier token issued by the host application
// and places the cashier identity in the request context.
func AuthMiddleware(verifier *utils.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := verifier.Verify(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("cashier_id", claims.CashierID)
		c.Set("cashier_name", claims.Name)
		c.Set("branch_id", claims.BranchID)

		c.Next()
	}
}
