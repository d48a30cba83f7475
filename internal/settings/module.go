// Package settings provides the admin settings domain module.
package settings

import (
	apphttp "cablecrm_backend/internal/http"
	"cablecrm_backend/internal/settings/handler"
	"cablecrm_backend/internal/settings/repository"
	"cablecrm_backend/internal/settings/service"
	"cablecrm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the settings domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new settings module with all dependencies wired
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "settings"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	settings := ctx.V1.Group("/settings")
	m.handler.RegisterRoutes(settings)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
