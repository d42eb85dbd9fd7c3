package routes

import (
	v1 "career-insights/internal/delivery/http/routes/v1"
	"career-insights/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, dashboard usecase.DashboardUsecase) {
	if r == nil || dashboard == nil {
		return
	}

	v1.Register(r, dashboard)
}
