package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/wedding-marketplace/backend/internal/genie"
)

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": message})
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
}

func notFound(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, map[string]string{"error": message})
}

func serviceUnavailable(c echo.Context, message string) error {
	return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": message})
}

func serverError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

// genieError переводит ошибки генератора в HTTP-ответ.
func genieError(c echo.Context, logger *slog.Logger, err error) error {
	var noVenue *genie.NoVenueFoundError

	switch {
	case errors.Is(err, genie.ErrInvalidInput):
		return badRequest(c, err.Error())
	case errors.As(err, &noVenue):
		return notFound(c, fmt.Sprintf("no venue found for area %s and %d guests", noVenue.Area, noVenue.GuestCount))
	case errors.Is(err, genie.ErrNoVenueFound):
		return notFound(c, "no venue found")
	case errors.Is(err, genie.ErrStoreUnavailable), errors.Is(err, context.DeadlineExceeded):
		logger.ErrorContext(c.Request().Context(), "genie listing store unavailable", slog.String("error", err.Error()))
		return serviceUnavailable(c, "vendor listings are temporarily unavailable")
	}

	logger.ErrorContext(c.Request().Context(), "genie plan generation failed", slog.String("error", err.Error()))
	return serverError(c)
}
