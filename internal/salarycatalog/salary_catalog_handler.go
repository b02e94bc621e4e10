package salarycatalog

import (
	"net/http"
	"strconv"

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
	l := zap.L().Named("salarycatalog.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salarycatalog.handler")
	}
	return &Handler{services: services, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("salary definition request failed",
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

func (h *Handler) Create(c *gin.Context) {
	var req CreateDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	svc, tenantID, ok := h.service(c)
	if !ok {
		return
	}

	resp, err := svc.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	svc, tenantID, ok := h.service(c)
	if !ok {
		return
	}

	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("active", "false"))
	resp, err := svc.List(c.Request.Context(), tenantID, activeOnly)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SetActive(c *gin.Context) {
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	svc, tenantID, ok := h.service(c)
	if !ok {
		return
	}

	if err := svc.SetActive(c.Request.Context(), tenantID, c.Param("code"), *req.Active); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"code": c.Param("code"), "active": *req.Active}, nil)
}
