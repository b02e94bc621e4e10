package document

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
	l := zap.L().Named("document.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.handler")
	}
	return &Handler{services: services, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("document request failed",
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

func (h *Handler) GetByID(c *gin.Context) {
	svc, tenantID, ok := h.service(c)
	if !ok {
		return
	}

	doc, err := svc.GetByID(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ToResponse(doc), nil)
}

func (h *Handler) ListBySubject(c *gin.Context) {
	svc, tenantID, ok := h.service(c)
	if !ok {
		return
	}

	docs, err := svc.ListBySubject(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp := make([]DocumentResponse, len(docs))
	for i := range docs {
		resp[i] = ToResponse(&docs[i])
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Transition(c *gin.Context) {
	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	svc, tenantID, ok := h.service(c)
	if !ok {
		return
	}

	doc, err := svc.Transition(c.Request.Context(), tenantID, c.GetString("user_id"), c.Param("id"), req.Status)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ToResponse(doc), nil)
}

func (h *Handler) Expire(c *gin.Context) {
	svc, tenantID, ok := h.service(c)
	if !ok {
		return
	}

	doc, err := svc.Expire(c.Request.Context(), tenantID, c.GetString("user_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ToResponse(doc), nil)
}
