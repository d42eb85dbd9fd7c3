package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"career-insights/internal/delivery/http/dto"
	"career-insights/internal/delivery/http/middleware"
	"career-insights/internal/insights"
	"career-insights/internal/pkg/response"
	"career-insights/internal/usecase"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gofiber/fiber/v3"
)

type ViewsHandler struct {
	uc usecase.DashboardUsecase
}

func NewViewsHandler(uc usecase.DashboardUsecase) *ViewsHandler {
	return &ViewsHandler{uc: uc}
}

func (h *ViewsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.HandleCatalog)
	r.Get("/"+usecase.ViewTopJobTitles, h.HandleTopJobTitles)
	r.Get("/"+usecase.ViewSalaryByJobTitle, h.HandleSalaryByJobTitle)
	r.Get("/"+usecase.ViewTopSkills, h.HandleTopSkills)
	r.Get("/"+usecase.ViewSalaryBySkill, h.HandleSalaryBySkill)
	r.Get("/"+usecase.ViewJobsByState, h.HandleJobsByState)
}

func (h *ViewsHandler) HandleCatalog(c fiber.Ctx) error {
	out := slice.Map(h.uc.Catalog(), func(_ int, v usecase.ViewDescriptor) dto.ViewResponse {
		return dto.ViewResponse{ID: v.ID, Tab: v.Tab, Header: v.Header, Filters: v.Filters}
	})
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ViewsHandler) HandleTopJobTitles(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid limit", nil, err)
	}

	state := parseSelection(c, "state")
	city := parseSelection(c, "city")
	series, err := h.uc.TopJobTitles(c.Context(), usecase.TopJobTitlesParams{State: state, City: city, Limit: limit})
	if err != nil {
		return mapDashboardUsecaseError(err)
	}

	return chartResponse(c, series, map[string]string{"state": state.String(), "city": city.String()})
}

func (h *ViewsHandler) HandleSalaryByJobTitle(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid limit", nil, err)
	}

	state := parseSelection(c, "state")
	city := parseSelection(c, "city")
	title := strings.TrimSpace(c.Query("title"))
	series, err := h.uc.SalaryByJobTitle(c.Context(), usecase.SalaryByJobTitleParams{State: state, City: city, Title: title, Limit: limit})
	if err != nil {
		return mapDashboardUsecaseError(err)
	}

	return chartResponse(c, series, map[string]string{"state": state.String(), "city": city.String(), "title": title})
}

func (h *ViewsHandler) HandleTopSkills(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid limit", nil, err)
	}

	jobTitle := parseSelection(c, "job_title")
	series, err := h.uc.TopSkills(c.Context(), usecase.TopSkillsParams{JobTitle: jobTitle, Limit: limit})
	if err != nil {
		return mapDashboardUsecaseError(err)
	}

	return chartResponse(c, series, map[string]string{"job_title": jobTitle.String()})
}

func (h *ViewsHandler) HandleSalaryBySkill(c fiber.Ctx) error {
	series, err := h.uc.SalaryBySkill(c.Context())
	if err != nil {
		return mapDashboardUsecaseError(err)
	}
	return chartResponse(c, series, map[string]string{})
}

func (h *ViewsHandler) HandleJobsByState(c fiber.Ctx) error {
	fill, err := parseQueryBoolStrict(c, "fill_states", false)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid fill_states", nil, err)
	}

	series, err := h.uc.JobsByState(c.Context(), usecase.JobsByStateParams{FillAllStates: fill})
	if err != nil {
		return mapDashboardUsecaseError(err)
	}

	return chartResponse(c, series, map[string]string{"fill_states": strconv.FormatBool(fill)})
}

func chartResponse(c fiber.Ctx, s usecase.ChartSeries, filters map[string]string) error {
	points := slice.Map(s.Points, func(_ int, p usecase.ChartPoint) dto.ChartPointResponse {
		return dto.ChartPointResponse{Category: p.Category, Value: p.Value, Label: p.Label}
	})

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ChartResponse{
		View:          s.View,
		Title:         s.Title,
		Kind:          string(s.Kind),
		Orientation:   s.Orientation,
		CategoryAxis:  s.CategoryAxis,
		ValueAxis:     s.ValueAxis,
		ColorScale:    s.ColorScale,
		LocationMode:  s.LocationMode,
		Scope:         s.Scope,
		CategoryOrder: s.CategoryOrder,
		Filters:       filters,
		Points:        points,
	})
}

func parseSelection(c fiber.Ctx, key string) insights.Selection {
	return insights.ParseSelection(c.Query(key))
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func parseQueryBoolStrict(c fiber.Ctx, key string, defaultVal bool) (bool, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return defaultVal, nil
	}
	return strconv.ParseBool(s)
}

func mapDashboardUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
