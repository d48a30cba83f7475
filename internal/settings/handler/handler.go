package handler

import (
	"net/http"

	"cablecrm_backend/internal/settings/service"
	"cablecrm_backend/internal/settings/transport"
	"cablecrm_backend/platform/httpkit"
	"cablecrm_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgInvalidKey       = "invalid setting key"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for admin settings
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new settings handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the settings routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:key", h.Get)
	rg.PUT("/:key", h.Set)
}

func (h *Handler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) Get(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidKey, nil)
		return
	}

	result, err := h.svc.Get(c.Request.Context(), key)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) Set(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidKey, nil)
		return
	}

	var req transport.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Set(c.Request.Context(), key, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
