package generation

import (
	"net/http"

	"go-hrdocs/internal/shared/apperror"
	"go-hrdocs/internal/shared/response"
	"go-hrdocs/internal/tenant"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	services tenant.Resolver[Service]
	logger   *zap.Logger
}

func NewHandler(services tenant.Resolver[Service], logger ...*zap.Logger) *Handler {
	l := zap.L().Named("generation.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("generation.handler")
	}
	return &Handler{services: services, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("generation request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	tenantID := c.GetString("tenant_id")
	svc, err := h.services(c.Request.Context(), tenantID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	res, err := svc.Generate(c.Request.Context(), tenantID, c.GetString("user_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, ToResponse(res), nil)
}
