package aiplans

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fitbridge/fitbridge/internal/telemetry/tracing"
)

type PsqlRepo struct {
	db *pgxpool.Pool
}

func NewPsqlRepo(db *pgxpool.Pool) *PsqlRepo {
	return &PsqlRepo{db: db}
}

func (r *PsqlRepo) Save(ctx context.Context, plan *Plan) (saved *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.aiplans.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	stored := *plan
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	stored.IsActive = true

	rows, err := r.db.Query(ctx, `
			INSERT INTO ai_plans
				(id, user_id, plan_type, title, plan_data, prompt_used,
				 generated_by, is_active, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id;`,
		stored.ID, stored.UserID, stored.PlanType, stored.Title,
		stored.PlanData, stored.PromptUsed, stored.GeneratedBy,
		stored.IsActive, stored.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrPlanNotFound
	}
	if err := rows.Scan(&stored.ID); err != nil {
		return nil, err
	}

	return &stored, nil
}

func (r *PsqlRepo) ListActive(ctx context.Context, userID string) (plans []Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.aiplans.listActive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
			SELECT id, user_id, plan_type, title, plan_data, prompt_used,
				generated_by, is_active, created_at
			FROM ai_plans
			WHERE user_id = $1 AND is_active
			ORDER BY created_at DESC;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans = make([]Plan, 0)
	for rows.Next() {
		var p Plan
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.PlanType, &p.Title, &p.PlanData,
			&p.PromptUsed, &p.GeneratedBy, &p.IsActive, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *PsqlRepo) Deactivate(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.aiplans.deactivate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	// rows affected deliberately unchecked, absent ids deactivate as a no-op
	_, err = r.db.Exec(ctx, `
			UPDATE ai_plans SET is_active = false
			WHERE id = $1 AND user_id = $2;`,
		id, userID,
	)
	return err
}
