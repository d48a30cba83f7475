// Package customers provides the customer book domain module.
package customers

import (
	"cablecrm_backend/internal/customers/handler"
	"cablecrm_backend/internal/customers/repository"
	"cablecrm_backend/internal/customers/service"
	apphttp "cablecrm_backend/internal/http"
	"cablecrm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the customers domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new customers module with all dependencies wired
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
	return "customers"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	customers := ctx.V1.Group("/customers")
	m.handler.RegisterRoutes(customers)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
