// Package consistency provides the quote consistency analysis domain module.
package consistency

import (
	"cablecrm_backend/internal/consistency/handler"
	"cablecrm_backend/internal/consistency/repository"
	"cablecrm_backend/internal/consistency/service"
	apphttp "cablecrm_backend/internal/http"
	"cablecrm_backend/platform/config"
	"cablecrm_backend/platform/logger"
	"cablecrm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the consistency domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new consistency module with all dependencies wired
func NewModule(pool *pgxpool.Pool, cfg config.ConsistencyConfig, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "consistency"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	consistency := ctx.V1.Group("/consistency")
	m.handler.RegisterRoutes(consistency)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
