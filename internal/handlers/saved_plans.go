package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/wedding-marketplace/backend/internal/auth"
	"example.com/wedding-marketplace/backend/internal/genie"
	"example.com/wedding-marketplace/backend/internal/models"
	"example.com/wedding-marketplace/backend/internal/notifications"
	"example.com/wedding-marketplace/backend/internal/repository"
)

type SavedPlanStore interface {
	Create(ctx context.Context, userID uuid.UUID, input, result json.RawMessage) (models.SavedPlan, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SavedPlan, error)
	GetByID(ctx context.Context, userID, planID uuid.UUID) (models.SavedPlan, error)
	Delete(ctx context.Context, userID, planID uuid.UUID) error
}

type SavedPlanHandler struct {
	Plans    SavedPlanStore
	Notifier *notifications.Hub
	Logger   *slog.Logger
}

// NewSavedPlanHandler создает обработчик сохраненных планов.
func NewSavedPlanHandler(plans SavedPlanStore, notifier *notifications.Hub, logger *slog.Logger) *SavedPlanHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SavedPlanHandler{Plans: plans, Notifier: notifier, Logger: logger}
}

type SavePlanRequest struct {
	Input json.RawMessage `json:"input" validate:"required"`
	Plan  json.RawMessage `json:"plan" validate:"required"`
}

type SavedPlanResponse struct {
	ID        uuid.UUID       `json:"id"`
	Input     json.RawMessage `json:"input"`
	Plan      json.RawMessage `json:"plan"`
	CreatedAt time.Time       `json:"created_at"`
}

// Create сохраняет план вместе с исходными параметрами без изменений.
func (h *SavedPlanHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req SavePlanRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	var input genie.Input
	if err := json.Unmarshal(req.Input, &input); err != nil {
		return badRequest(c, "invalid input")
	}
	var plan genie.PlanResult
	if err := json.Unmarshal(req.Plan, &plan); err != nil {
		return badRequest(c, "invalid plan")
	}

	saved, err := h.Plans.Create(c.Request().Context(), userID, req.Input, req.Plan)
	if err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid plan")
		}
		h.Logger.ErrorContext(c.Request().Context(), "save genie plan failed", slog.String("user_id", userID.String()), slog.String("error", err.Error()))
		return serverError(c)
	}

	publishPlanSaved(h.Notifier, userID, saved.ID, input, plan)

	return c.JSON(http.StatusCreated, toSavedPlanResponse(saved))
}

// List возвращает сохраненные планы пользователя.
func (h *SavedPlanHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	plans, err := h.Plans.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	response := make([]SavedPlanResponse, 0, len(plans))
	for _, plan := range plans {
		response = append(response, toSavedPlanResponse(plan))
	}

	return c.JSON(http.StatusOK, map[string][]SavedPlanResponse{"saved_plans": response})
}

// Get возвращает сохраненный план.
func (h *SavedPlanHandler) Get(c echo.Context) error {
	plan, err := h.load(c)
	if err != nil {
		return err
	}
	if plan == nil {
		return nil
	}

	return c.JSON(http.StatusOK, toSavedPlanResponse(*plan))
}

// Delete удаляет сохраненный план.
func (h *SavedPlanHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid plan id")
	}

	if err := h.Plans.Delete(c.Request().Context(), userID, planID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "plan not found")
		}
		return serverError(c)
	}

	publishPlanDeleted(h.Notifier, userID, planID)

	return c.NoContent(http.StatusNoContent)
}

// load writes the error response itself and returns a nil plan when the request cannot continue.
func (h *SavedPlanHandler) load(c echo.Context) (*models.SavedPlan, error) {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return nil, unauthorized(c)
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, badRequest(c, "invalid plan id")
	}

	plan, err := h.Plans.GetByID(c.Request().Context(), userID, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound(c, "plan not found")
		}
		return nil, serverError(c)
	}

	return &plan, nil
}

func toSavedPlanResponse(plan models.SavedPlan) SavedPlanResponse {
	return SavedPlanResponse{
		ID:        plan.ID,
		Input:     plan.Input,
		Plan:      plan.Result,
		CreatedAt: plan.CreatedAt,
	}
}
