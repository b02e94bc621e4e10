package document

import (
	"go-hrdocs/internal/middleware"
	"go-hrdocs/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the ledger reads and status changes. Document
// creation lives with generation.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz rbac.Authorizer) {
	docs := r.Group("/documents")
	{
		docs.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(authz, rbac.ResourceDocument, rbac.ActionRead),
			handler.GetByID,
		)
		docs.POST("/:id/transition",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(authz, rbac.ResourceDocument, rbac.ActionTransition),
			handler.Transition,
		)
		docs.POST("/:id/expire",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(authz, rbac.ResourceDocument, rbac.ActionExpire),
			handler.Expire,
		)
	}

	r.GET("/subjects/:id/documents",
		middleware.RateLimitByUser(3, 10),
		middleware.RBACAuthorize(authz, rbac.ResourceDocument, rbac.ActionRead),
		handler.ListBySubject,
	)
}
