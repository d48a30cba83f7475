package handler

import (
	"net/http"
	"strconv"

	"cablecrm_backend/internal/consistency/service"
	"cablecrm_backend/internal/consistency/transport"
	"cablecrm_backend/platform/httpkit"
	"cablecrm_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgInvalidID        = "invalid quote id"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for consistency analysis
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new consistency handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the consistency routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analyze/:id", h.Analyze)
	rg.GET("/templates", h.Templates)
	rg.POST("/apply-template/:id", h.ApplyTemplate)
	rg.GET("/comparison-report", h.ComparisonReport)
}

func (h *Handler) Analyze(c *gin.Context) {
	id, ok := quoteID(c)
	if !ok {
		return
	}

	result, err := h.svc.Analyze(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) Templates(c *gin.Context) {
	httpkit.OK(c, gin.H{"templates": h.svc.Templates()})
}

func (h *Handler) ApplyTemplate(c *gin.Context) {
	id, ok := quoteID(c)
	if !ok {
		return
	}

	var req transport.ApplyTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.ApplyTemplate(c.Request.Context(), id, req.TemplateName)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"template_result": result})
}

func (h *Handler) ComparisonReport(c *gin.Context) {
	result, err := h.svc.ComparisonReport(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func quoteID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return 0, false
	}
	return id, true
}
