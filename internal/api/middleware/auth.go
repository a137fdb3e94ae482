package middleware

import (
	"errors"
	"log"
	"strings"

	"vagas-rmc/internal/auth"
	"vagas-rmc/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	authorizationHeader = "Authorization"
	principalCtx        = "principal" // Key to store the session principal in context
)

// Authenticate resolves the session from the Authorization header or the
// session cookie. It never rejects a request: a missing or invalid token
// leaves the request anonymous and RouteGuard/RequireRole decide.
func Authenticate(tokens *auth.TokenManager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader(authorizationHeader))
		if tokenString == "" && cookieName != "" {
			if cookie, err := c.Cookie(cookieName); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			c.Next()
			return
		}

		principal, err := tokens.Parse(tokenString)
		if err != nil {
			log.Printf("Auth middleware: Ignoring invalid token: %v", err)
			c.Next()
			return
		}

		c.Set(principalCtx, principal)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// GetPrincipal returns the authenticated principal, if any.
func GetPrincipal(c *gin.Context) (*models.Principal, bool) {
	value, exists := c.Get(principalCtx)
	if !exists {
		return nil, false
	}
	principal, ok := value.(*models.Principal)
	return principal, ok && principal != nil
}

// SetPrincipal stores p as the request principal.
func SetPrincipal(c *gin.Context, p *models.Principal) {
	c.Set(principalCtx, p)
}

// GetUserIDFromContext returns the authenticated user's ID.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	principal, ok := GetPrincipal(c)
	if !ok {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	return principal.UserID, nil
}
