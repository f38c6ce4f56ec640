package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/wedding-marketplace/backend/internal/genie"
	"example.com/wedding-marketplace/backend/internal/models"
)

type PlanGenerator interface {
	Generate(ctx context.Context, in genie.Input) ([]genie.PlanResult, error)
}

type GenieHandler struct {
	Planner PlanGenerator
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewGenieHandler создает обработчик генерации свадебного плана.
func NewGenieHandler(planner PlanGenerator, timeout time.Duration, logger *slog.Logger) *GenieHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenieHandler{Planner: planner, Timeout: timeout, Logger: logger}
}

type GeneratePlanRequest struct {
	Area               string             `json:"area" validate:"required,max=100"`
	GuestCount         int                `json:"guest_count" validate:"gt=0"`
	TotalBudget        int64              `json:"total_budget" validate:"gt=0"`
	ExcludedCategories []string           `json:"excluded_categories" validate:"max=20,dive,max=100"`
	PriorityCategories []string           `json:"priority_categories" validate:"dive,max=100"`
	PlannerType        models.PlannerType `json:"planner_type" validate:"required,planner_type"`
}

type GeneratePlanResponse struct {
	Plans []genie.PlanResult `json:"plans"`
}

// Generate строит стартовый план по параметрам пары.
func (h *GenieHandler) Generate(c echo.Context) error {
	var req GeneratePlanRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	ctx := c.Request().Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	plans, err := h.Planner.Generate(ctx, req.toInput())
	if err != nil {
		return genieError(c, h.Logger, err)
	}

	return c.JSON(http.StatusOK, GeneratePlanResponse{Plans: plans})
}

func (r GeneratePlanRequest) toInput() genie.Input {
	return genie.Input{
		Area:               strings.TrimSpace(r.Area),
		GuestCount:         r.GuestCount,
		TotalBudget:        r.TotalBudget,
		ExcludedCategories: trimNames(r.ExcludedCategories),
		PriorityCategories: trimNames(r.PriorityCategories),
		PlannerType:        models.PlannerType(strings.ToLower(strings.TrimSpace(string(r.PlannerType)))),
	}
}

func trimNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
