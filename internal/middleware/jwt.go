package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/adminui-api/internal/models"
	appErrors "github.com/noah-isme/adminui-api/pkg/errors"
	"github.com/noah-isme/adminui-api/pkg/response"
)

// ContextClaimsKey is the gin context key storing token claims.
const ContextClaimsKey = "tokenClaims"

type tokenValidator interface {
	Validate(token string) (*models.TokenClaims, error)
}

// JWT protects routes by requiring a valid bearer token.
func JWT(tokens tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := tokens.Validate(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// Subject returns the authenticated subject, or "" when the route is open.
func Subject(c *gin.Context) string {
	value, exists := c.Get(ContextClaimsKey)
	if !exists {
		return ""
	}
	claims, ok := value.(*models.TokenClaims)
	if !ok || claims == nil {
		return ""
	}
	return claims.Subject
}
