package generation

import (
	"go-hrdocs/internal/middleware"
	"go-hrdocs/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz rbac.Authorizer, rdb *redis.Client) {
	r.POST("/documents",
		middleware.RateLimitByUser(1, 3),
		middleware.RBACAuthorize(authz, rbac.ResourceDocument, rbac.ActionWrite),
		middleware.Idempotency(rdb, zap.L()),
		handler.Generate,
	)
}
