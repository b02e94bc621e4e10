package docconfig

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
	l := zap.L().Named("docconfig.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("docconfig.handler")
	}
	return &Handler{services: services, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("document config request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) service(c *gin.Context) (Service, string, bool) {
	tenantID := c.GetString("tenant_id")
	svc, err := h.services(c.Request.Context(), tenantID)
	if err != nil {
		h.writeServiceError(c, err)
		return nil, "", false
	}
	return svc, tenantID, true
}

// Get returns the active config, or the built-in default flagged with
// fromDefault.
func (h *Handler) Get(c *gin.Context) {
	svc, tenantID, ok := h.service(c)
	if !ok {
		return
	}

	cfg, fromDefault, err := svc.ResolveConfig(c.Request.Context(), tenantID, c.Param("type"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ToResponse(cfg, fromDefault), nil)
}

func (h *Handler) Upsert(c *gin.Context) {
	var req UpsertConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	svc, tenantID, ok := h.service(c)
	if !ok {
		return
	}

	cfg, err := svc.UpsertConfig(c.Request.Context(), tenantID, c.GetString("user_id"), c.Param("type"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ToResponse(cfg, false), nil)
}

func (h *Handler) History(c *gin.Context) {
	svc, tenantID, ok := h.service(c)
	if !ok {
		return
	}

	configs, err := svc.ListConfigs(c.Request.Context(), tenantID, c.Param("type"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp := make([]ConfigResponse, len(configs))
	for i := range configs {
		resp[i] = ToResponse(&configs[i], false)
	}
	response.Success(c, http.StatusOK, resp, nil)
}
