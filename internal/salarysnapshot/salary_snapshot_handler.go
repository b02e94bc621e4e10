package salarysnapshot

import (
	"net/http"
	"strconv"

	salarysnapshoterrors "go-hrdocs/internal/salarysnapshot/errors"
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
	l := zap.L().Named("salarysnapshot.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salarysnapshot.handler")
	}
	return &Handler{services: services, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("salary snapshot request failed",
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
	var req CreateSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.ErrInvalidInput.WithDetails(map[string]any{"body": err.Error()}))
		return
	}

	svc, tenantID, ok := h.service(c)
	if !ok {
		return
	}

	snap, err := svc.Create(c.Request.Context(), tenantID, c.Param("id"), c.GetString("user_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, ToResponse(*snap), nil)
}

func (h *Handler) GetCurrent(c *gin.Context) {
	svc, tenantID, ok := h.service(c)
	if !ok {
		return
	}

	snap, err := svc.GetCurrent(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if snap == nil {
		h.writeServiceError(c, salarysnapshoterrors.ErrSnapshotNotFound.WithDetails(map[string]any{"subject_id": c.Param("id")}))
		return
	}

	response.Success(c, http.StatusOK, ToResponse(*snap), nil)
}

func (h *Handler) GetVersion(c *gin.Context) {
	version, err := strconv.Atoi(c.Param("version"))
	if err != nil {
		h.writeServiceError(c, salarysnapshoterrors.ErrInvalidVersion)
		return
	}

	svc, tenantID, ok := h.service(c)
	if !ok {
		return
	}

	snap, err := svc.GetVersion(c.Request.Context(), tenantID, c.Param("id"), version)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if snap == nil {
		h.writeServiceError(c, salarysnapshoterrors.ErrSnapshotNotFound.WithDetails(map[string]any{
			"subject_id": c.Param("id"),
			"version":    version,
		}))
		return
	}

	response.Success(c, http.StatusOK, ToResponse(*snap), nil)
}

func (h *Handler) ListVersions(c *gin.Context) {
	svc, tenantID, ok := h.service(c)
	if !ok {
		return
	}

	snaps, err := svc.ListVersions(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp := make([]SnapshotResponse, len(snaps))
	for i, s := range snaps {
		resp[i] = ToResponse(s)
	}
	response.Success(c, http.StatusOK, resp, nil)
}
