package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"example.com/wedding-marketplace/backend/internal/models"
)

type CategoryLister interface {
	ListCategories(ctx context.Context, excluding []string) ([]models.Category, error)
}

type CategoryHandler struct {
	Categories CategoryLister
}

// NewCategoryHandler создает обработчик справочника категорий.
func NewCategoryHandler(categories CategoryLister) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

// List возвращает категории с ролями и единицами цены, кроме исключенных.
func (h *CategoryHandler) List(c echo.Context) error {
	excluding := trimNames(strings.Split(c.QueryParam("exclude"), ","))

	categories, err := h.Categories.ListCategories(c.Request().Context(), excluding)
	if err != nil {
		return serviceUnavailable(c, "categories are temporarily unavailable")
	}

	return c.JSON(http.StatusOK, map[string][]models.Category{"categories": categories})
}
