package salarycatalog

import (
	"go-hrdocs/internal/middleware"
	"go-hrdocs/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz rbac.Authorizer) {
	defs := r.Group("/salary-definitions")
	{
		defs.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(authz, rbac.ResourceCatalog, rbac.ActionRead),
			handler.List,
		)
		defs.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(authz, rbac.ResourceCatalog, rbac.ActionWrite),
			handler.Create,
		)
		defs.PATCH("/:code/active",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(authz, rbac.ResourceCatalog, rbac.ActionWrite),
			handler.SetActive,
		)
	}
}
