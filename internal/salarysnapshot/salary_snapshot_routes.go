package salarysnapshot

import (
	"go-hrdocs/internal/middleware"
	"go-hrdocs/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz rbac.Authorizer) {
	snapshots := r.Group("/subjects/:id/snapshots")
	{
		snapshots.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(authz, rbac.ResourceSnapshot, rbac.ActionRead),
			handler.ListVersions,
		)
		snapshots.GET("/current",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(authz, rbac.ResourceSnapshot, rbac.ActionRead),
			handler.GetCurrent,
		)
		snapshots.GET("/:version",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(authz, rbac.ResourceSnapshot, rbac.ActionRead),
			handler.GetVersion,
		)
		snapshots.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(authz, rbac.ResourceSnapshot, rbac.ActionWrite),
			handler.Create,
		)
	}
}
