package v1

import (
	"career-insights/internal/delivery/http/handler"
	"career-insights/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, dashboard usecase.DashboardUsecase) {
	if r == nil {
		return
	}

	handler.NewViewsHandler(dashboard).RegisterRoutes(r.Group("/views"))
	handler.NewOptionsHandler(dashboard).RegisterRoutes(r.Group("/options"))
}
