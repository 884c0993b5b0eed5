package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"memberhub/internal/authz"
)

const principalKey = "principal"

// TokenParser validates a bearer token; services.AuthService satisfies it.
type TokenParser interface {
	ParseAccessToken(token string) (*authz.Claims, error)
}

func bearerToken(c *gin.Context) string {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AuthMiddleware requires a valid session token and stores its principal in the context.
func AuthMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		// пропускаем preflight
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		tokenStr := bearerToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		claims, err := parser.ParseAccessToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(principalKey, claims.Principal)
		c.Next()
	}
}

// PrincipalFrom returns the principal AuthMiddleware stored.
func PrincipalFrom(c *gin.Context) (authz.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return authz.Principal{}, false
	}
	p, ok := v.(authz.Principal)
	return p, ok
}

// SetPrincipal is used by tests that bypass token parsing.
func SetPrincipal(c *gin.Context, p authz.Principal) {
	c.Set(principalKey, p)
}
