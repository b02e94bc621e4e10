package docconfig

import (
	"go-hrdocs/internal/middleware"
	"go-hrdocs/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz rbac.Authorizer) {
	configs := r.Group("/document-configs")
	{
		configs.GET("/:type",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(authz, rbac.ResourceConfig, rbac.ActionRead),
			handler.Get,
		)
		configs.GET("/:type/history",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(authz, rbac.ResourceConfig, rbac.ActionRead),
			handler.History,
		)
		configs.PUT("/:type",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(authz, rbac.ResourceConfig, rbac.ActionWrite),
			handler.Upsert,
		)
	}
}
