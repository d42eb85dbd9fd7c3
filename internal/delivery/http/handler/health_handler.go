package handler

import (
	"context"
	"sort"
	"time"

	"career-insights/internal/delivery/http/dto"
	"career-insights/internal/pkg/response"
	"career-insights/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// HealthCheck reports whether one backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	uc     usecase.DashboardUsecase
	checks map[string]HealthCheck
}

func NewHealthHandler(uc usecase.DashboardUsecase, checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{uc: uc, checks: checks}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

// Health stays 200 when a dependency is down: the dataset is already in
// memory and the cache is bypassed.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	out := dto.HealthResponse{Status: "ok", Dependencies: map[string]bool{}}
	if h.uc != nil {
		info := h.uc.Dataset()
		out.Records = info.Records
		out.Source = info.Source
		out.LoadedAt = info.LoadedAt
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()
	for _, name := range names {
		healthy := h.checks[name](ctx) == nil
		out.Dependencies[name] = healthy
		if !healthy {
			out.Status = "degraded"
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
