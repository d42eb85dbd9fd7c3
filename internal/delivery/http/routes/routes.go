package routes

import (
	"net/http"

	"career-insights/internal/delivery/http/handler"
	"career-insights/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

type Registry struct {
	dashboard usecase.DashboardUsecase
	health    *handler.HealthHandler
	metrics   http.Handler
}

// NewRegistry wires every route. metrics may be nil, in which case
// /metrics is not mounted.
func NewRegistry(dashboard usecase.DashboardUsecase, metrics http.Handler, checks map[string]handler.HealthCheck) *Registry {
	return &Registry{
		dashboard: dashboard,
		health:    handler.NewHealthHandler(dashboard, checks),
		metrics:   metrics,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerMetrics(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerMetrics(app *fiber.App) {
	if r.metrics == nil {
		return
	}
	app.Get("/metrics", adaptor.HTTPHandler(r.metrics))
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.dashboard)
}
