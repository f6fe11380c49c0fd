package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/injapanfood/pos-api/internal/application/service"
	"github.com/injapanfood/pos-api/internal/domain/entity"
	"github.com/injapanfood/pos-api/internal/presentation/http/dto/response"
	"github.com/injapanfood/pos-api/pkg/utils"
)

// CashierKey is the gin context key holding the authenticated entity.Cashier
const CashierKey = "cashier"

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
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

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		name := claims.Name
		if name == "" {
			name = claims.Email
		}

		c.Set(CashierKey, entity.Cashier{
			ID:    claims.UserID,
			Name:  name,
			Email: claims.Email,
			Roles: claims.Roles,
		})
		c.Set("user_id", claims.UserID)

		c.Next()
	}
}

// GetCashier returns the authenticated cashier set by AuthMiddleware
func GetCashier(c *gin.Context) (entity.Cashier, bool) {
	v, exists := c.Get(CashierKey)
	if !exists {
		return entity.Cashier{}, false
	}
	cashier, ok := v.(entity.Cashier)
	return cashier, ok
}

// RequireAdmin only lets through cashiers the authorizer accepts
func RequireAdmin(authorizer service.Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		cashier, ok := GetCashier(c)
		if !ok {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		if !authorizer.IsAdmin(cashier) {
			response.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
