// Package pricing provides the material pricing catalog domain module.
package pricing

import (
	apphttp "cablecrm_backend/internal/http"
	"cablecrm_backend/internal/pricing/handler"
	"cablecrm_backend/internal/pricing/repository"
	"cablecrm_backend/internal/pricing/service"
	"cablecrm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the pricing domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new pricing module with all dependencies wired
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
	return "pricing"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	pricing := ctx.V1.Group("/pricing")
	m.handler.RegisterRoutes(pricing)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
