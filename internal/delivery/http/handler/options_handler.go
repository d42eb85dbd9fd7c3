package handler

import (
	"career-insights/internal/delivery/http/dto"
	"career-insights/internal/insights"
	"career-insights/internal/pkg/response"
	"career-insights/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type OptionsHandler struct {
	uc usecase.DashboardUsecase
}

func NewOptionsHandler(uc usecase.DashboardUsecase) *OptionsHandler {
	return &OptionsHandler{uc: uc}
}

func (h *OptionsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/states", h.HandleStates)
	r.Get("/cities", h.HandleCities)
	r.Get("/job-titles", h.HandleJobTitles)
}

func (h *OptionsHandler) HandleStates(c fiber.Ctx) error {
	opts, err := h.uc.StateOptions(c.Context())
	if err != nil {
		return mapDashboardUsecaseError(err)
	}
	return optionsResponse(c, insights.FieldState, opts)
}

func (h *OptionsHandler) HandleCities(c fiber.Ctx) error {
	opts, err := h.uc.CityOptions(c.Context(), parseSelection(c, "state"))
	if err != nil {
		return mapDashboardUsecaseError(err)
	}
	return optionsResponse(c, insights.FieldCity, opts)
}

func (h *OptionsHandler) HandleJobTitles(c fiber.Ctx) error {
	opts, err := h.uc.JobTitleOptions(c.Context())
	if err != nil {
		return mapDashboardUsecaseError(err)
	}
	return optionsResponse(c, insights.FieldJobTitle, opts)
}

func optionsResponse(c fiber.Ctx, field insights.Field, opts []string) error {
	if opts == nil {
		opts = []string{}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.OptionsResponse{Field: field.String(), Options: opts})
}
