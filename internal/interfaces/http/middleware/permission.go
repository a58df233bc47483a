package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boostline-inc/boostline/internal/infrastructure/permission"
	"github.com/boostline-inc/boostline/internal/shared/utils"
)

// PermissionMiddleware is the one place administrative access is
// decided. Every admin route group mounts it; handlers never check
// roles themselves.
type PermissionMiddleware struct {
	enforcer *permission.Enforcer
}

func NewPermissionMiddleware(enforcer *permission.Enforcer) *PermissionMiddleware {
	return &PermissionMiddleware{enforcer: enforcer}
}

// RequirePermission authorizes the caller's role against the requested
// path and method. It must run after RequireAuth.
func (m *PermissionMiddleware) RequirePermission() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := CurrentUserRole(c)
		if role == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		allowed, err := m.enforcer.Enforce(role, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Permission check failed")
			c.Abort()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
