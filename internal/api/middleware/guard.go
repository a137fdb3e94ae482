package middleware

import (
	"net/http"
	"strings"

	"vagas-rmc/internal/models"
	"vagas-rmc/internal/transport/dto"

	"github.com/gin-gonic/gin"
)

// GuardRule restricts every path under Prefix to Role. Page rules redirect
// to the login page; API rules answer with a JSON error.
type GuardRule struct {
	Prefix string
	Role   models.Role
	Page   bool
}

// LoginPath is where page rules send visitors without the required role.
const LoginPath = "/login"

// DefaultGuardRules protects the role areas of the API under apiPrefix and
// the matching page namespaces.
func DefaultGuardRules(apiPrefix string) []GuardRule {
	return []GuardRule{
		{Prefix: apiPrefix + "/candidate", Role: models.RoleCandidate},
		{Prefix: apiPrefix + "/company", Role: models.RoleCompany},
		{Prefix: apiPrefix + "/admin", Role: models.RoleAdmin},
		{Prefix: "/candidato", Role: models.RoleCandidate, Page: true},
		{Prefix: "/empresa", Role: models.RoleCompany, Page: true},
		{Prefix: "/admin", Role: models.RoleAdmin, Page: true},
	}
}

// RouteGuard enforces rules by path prefix. It must run after Authenticate.
// Paths matching no rule pass through.
func RouteGuard(rules []GuardRule) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, rule := range rules {
			if !hasPathPrefix(path, rule.Prefix) {
				continue
			}
			principal, ok := GetPrincipal(c)
			if ok && principal.Role == rule.Role {
				break
			}
			if rule.Page {
				c.Redirect(http.StatusFound, LoginPath)
				c.Abort()
				return
			}
			deny(c, ok)
			return
		}
		c.Next()
	}
}

// RequireRole rejects requests whose principal has none of roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if ok {
			for _, role := range roles {
				if principal.Role == role {
					c.Next()
					return
				}
			}
		}
		deny(c, ok)
	}
}

func deny(c *gin.Context, authenticated bool) {
	if !authenticated {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Response{
			Error: "Authentication required",
			Code:  "UNAUTHENTICATED",
		})
		return
	}
	c.AbortWithStatusJSON(http.StatusForbidden, dto.Response{
		Error: "Access denied",
		Code:  "FORBIDDEN",
	})
}

// hasPathPrefix matches whole path segments, so /admin does not cover /administrator.
func hasPathPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}
