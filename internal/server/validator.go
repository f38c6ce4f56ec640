package server

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"example.com/wedding-marketplace/backend/internal/models"
)

type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator создает валидатор на базе go-playground/validator.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("planner_type", validatePlannerType)
	return &CustomValidator{validator: v}
}

// Validate запускает проверку структуры по тегам.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func validatePlannerType(fl validator.FieldLevel) bool {
	value := strings.ToLower(strings.TrimSpace(fl.Field().String()))
	return models.PlannerType(value).Valid()
}
