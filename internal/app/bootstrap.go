package app

import (
	"context"
	"fmt"
	"strings"

	"career-insights/internal/config"
	"career-insights/internal/delivery/http/handler"
	"career-insights/internal/delivery/http/middleware"
	"career-insights/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber *fiber.App
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f}
}

func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

// Access logging wraps error handling so it records the final status.
func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger, c.Metrics).Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	routes.NewRegistry(c.Dashboard, c.Metrics.Handler(), healthChecks(c)).Register(app)
}

func healthChecks(c *Container) map[string]handler.HealthCheck {
	checks := map[string]handler.HealthCheck{}
	if c.Config.Redis.Enabled && c.Cache != nil {
		checks["redis"] = c.Cache.Ping
	}
	if c.DB != nil {
		checks["database"] = c.DB.Ping
	}
	return checks
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
