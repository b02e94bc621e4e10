package middleware

import (
	"context"

	"go-hrdocs/internal/shared/apperror"
	"go-hrdocs/internal/shared/response"
	tenanterrors "go-hrdocs/internal/tenant/errors"

	"github.com/gin-gonic/gin"
)

// TenantCheck resolves a tenant id, opening its store on first use.
type TenantCheck func(ctx context.Context, tenantID string) error

// TenantContext resolves the caller's tenant before any handler runs, so
// an unknown tenant or an unreachable tenant store fails the request up
// front with a distinct error.
func TenantContext(check TenantCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetString("tenant_id")
		if tenantID == "" {
			abortWith(c, tenanterrors.ErrTenantRequired, nil)
			return
		}

		if err := check(c.Request.Context(), tenantID); err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
			c.Abort()
			return
		}

		c.Next()
	}
}
