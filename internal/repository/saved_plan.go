package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"example.com/wedding-marketplace/backend/internal/models"
)

// SavedPlanRepository хранит сгенерированные планы пары как есть.
type SavedPlanRepository struct {
	db *sql.DB
}

// NewSavedPlanRepository создает репозиторий сохраненных планов.
func NewSavedPlanRepository(db *sql.DB) *SavedPlanRepository {
	return &SavedPlanRepository{db: db}
}

// Create сохраняет входные параметры и результат генерации.
func (r *SavedPlanRepository) Create(ctx context.Context, userID uuid.UUID, input, result json.RawMessage) (models.SavedPlan, error) {
	plan := models.SavedPlan{UserID: userID, Input: input, Result: result}

	if !json.Valid(input) || !json.Valid(result) {
		return plan, ErrInvalid
	}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO saved_plans (user_id, input, result)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		userID, []byte(input), []byte(result),
	).Scan(&plan.ID, &plan.CreatedAt)
	if err != nil {
		return plan, err
	}

	return plan, nil
}

// ListByUser возвращает сохраненные планы пользователя, новые первыми.
func (r *SavedPlanRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SavedPlan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, input, result, created_at
		 FROM saved_plans
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]models.SavedPlan, 0)
	for rows.Next() {
		plan, err := scanSavedPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

// GetByID возвращает сохраненный план пользователя.
func (r *SavedPlanRepository) GetByID(ctx context.Context, userID, planID uuid.UUID) (models.SavedPlan, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, input, result, created_at
		 FROM saved_plans
		 WHERE id = $1 AND user_id = $2`,
		planID, userID,
	)

	plan, err := scanSavedPlan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return plan, ErrNotFound
		}
		return plan, err
	}

	return plan, nil
}

// Delete удаляет сохраненный план пользователя.
func (r *SavedPlanRepository) Delete(ctx context.Context, userID, planID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM saved_plans WHERE id = $1 AND user_id = $2`,
		planID, userID,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSavedPlan(row rowScanner) (models.SavedPlan, error) {
	var (
		plan          models.SavedPlan
		input, result []byte
	)

	if err := row.Scan(&plan.ID, &plan.UserID, &input, &result, &plan.CreatedAt); err != nil {
		return plan, err
	}

	plan.Input = json.RawMessage(input)
	plan.Result = json.RawMessage(result)
	return plan, nil
}
