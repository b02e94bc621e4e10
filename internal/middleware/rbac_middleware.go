package middleware

import (
	"go-hrdocs/internal/rbac"
	"go-hrdocs/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

func RBACAuthorize(authz rbac.Authorizer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetString("tenant_id")
		if tenantID == "" {
			abortWith(c, apperror.ErrUnauthorized, map[string]any{"reason": "missing auth context"})
			return
		}

		allowed, err := authz.Enforce(rbac.EnforceRequest{
			Role:     c.GetString("role"),
			TenantID: tenantID,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			abortWith(c, apperror.ErrInternal, nil)
			return
		}

		if !allowed {
			abortWith(c, apperror.ErrForbidden, map[string]any{"required": resource + ":" + action})
			return
		}
		c.Next()
	}
}
