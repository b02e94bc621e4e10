package subject

import (
	"go-hrdocs/internal/middleware"
	"go-hrdocs/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz rbac.Authorizer) {
	subjects := r.Group("/subjects")
	{
		subjects.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(authz, rbac.ResourceSubject, rbac.ActionRead),
			handler.GetAll,
		)
		subjects.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(authz, rbac.ResourceSubject, rbac.ActionRead),
			handler.GetByID,
		)
		subjects.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(authz, rbac.ResourceSubject, rbac.ActionWrite),
			handler.Upsert,
		)
	}
}
