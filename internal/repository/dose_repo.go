package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"microdose-api/internal/domain"
)

// DoseResultRepository persiste el historial de cálculos de dosis.
type DoseResultRepository interface {
	Create(ctx context.Context, result domain.DoseResult) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.DoseResult, error)
}

// PgDoseResultRepository implementa DoseResultRepository usando pgxpool.
type PgDoseResultRepository struct {
	pool *pgxpool.Pool
}

func NewPgDoseResultRepository(pool *pgxpool.Pool) *PgDoseResultRepository {
	return &PgDoseResultRepository{pool: pool}
}

func (r *PgDoseResultRepository) Create(ctx context.Context, result domain.DoseResult) error {
	const query = `
		INSERT INTO dose_results (
			id, user_id, substance, intake_form, goal,
			calculated_dose, dose_unit, base_dose,
			weight_factor, sensitivity_factor, goal_factor, intake_form_factor,
			explanation, recommendations, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.pool.Exec(ctx, query,
		result.ID,
		result.UserID,
		string(result.Substance),
		string(result.IntakeForm),
		string(result.Goal),
		result.CalculatedDose,
		string(result.DoseUnit),
		result.BaseDose,
		result.WeightFactor,
		result.SensitivityFactor,
		result.GoalFactor,
		result.IntakeFormFactor,
		result.Explanation,
		result.Recommendations,
		result.CreatedAt,
	)
	return err
}

func (r *PgDoseResultRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.DoseResult, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
		SELECT id, user_id, substance, intake_form, goal,
		       calculated_dose, dose_unit, base_dose,
		       weight_factor, sensitivity_factor, goal_factor, intake_form_factor,
		       explanation, recommendations, created_at
		FROM dose_results
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DoseResult
	for rows.Next() {
		var res domain.DoseResult
		if err := rows.Scan(
			&res.ID,
			&res.UserID,
			&res.Substance,
			&res.IntakeForm,
			&res.Goal,
			&res.CalculatedDose,
			&res.DoseUnit,
			&res.BaseDose,
			&res.WeightFactor,
			&res.SensitivityFactor,
			&res.GoalFactor,
			&res.IntakeFormFactor,
			&res.Explanation,
			&res.Recommendations,
			&res.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
