package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clinicly/booking-api/internal/handler"
	"github.com/clinicly/booking-api/internal/repository"
	"github.com/clinicly/booking-api/pkg/auth"
)

// Context keys set by Authenticate
const (
	ContextPrincipalID    = "principalID"
	ContextPrincipalEmail = "principalEmail"
	ContextPrincipalRole  = "principalRole"
	ContextTokenID        = "tokenID"
	ContextTokenExpiresAt = "tokenExpiresAt"
)

type AuthMiddleware struct {
	tokens     auth.TokenService
	tokenStore repository.TokenStore
}

func NewAuthMiddleware(tokens auth.TokenService, tokenStore repository.TokenStore) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:     tokens,
		tokenStore: tokenStore,
	}
}

// Authenticate verifies the bearer token and sets principal info in context
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		claims, err := m.tokens.Validate(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		revoked, err := m.tokenStore.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil || revoked {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		principalID, err := claims.PrincipalID()
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		c.Set(ContextPrincipalID, principalID)
		c.Set(ContextPrincipalEmail, claims.Email)
		c.Set(ContextPrincipalRole, claims.Role)
		c.Set(ContextTokenID, claims.ID)
		c.Set(ContextTokenExpiresAt, claims.ExpiresAt.Time)
		c.Next()
	}
}

// RequireRole gates an endpoint on the role claim
func (m *AuthMiddleware) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextPrincipalRole) != role {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("insufficient role"))
			c.Abort()
			return
		}
		c.Next()
	}
}
