package diet

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fitbridge/fitbridge/internal/dates"
	"github.com/fitbridge/fitbridge/internal/telemetry/tracing"
)

type PsqlRepo struct {
	db *pgxpool.Pool
}

func NewPsqlRepo(db *pgxpool.Pool) *PsqlRepo {
	return &PsqlRepo{db: db}
}

func (r *PsqlRepo) Create(ctx context.Context, meal *Meal) (created *Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.diet.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	stored := *meal
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	if stored.LogDate == "" {
		stored.LogDate = dates.Today()
	}

	rows, err := r.db.Query(ctx, `
			INSERT INTO diet_log
				(id, user_id, meal_type, meal_name, calories, protein, carbs, fats,
				 description, is_ai_generated, log_date, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id;`,
		stored.ID, stored.UserID, stored.MealType, stored.MealName,
		stored.Calories, stored.Protein, stored.Carbs, stored.Fats,
		stored.Description, stored.IsAIGenerated, stored.LogDate, stored.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrMealNotFound
	}
	if err := rows.Scan(&stored.ID); err != nil {
		return nil, err
	}

	return &stored, nil
}

const mealSelectColumns = `
	id, user_id, meal_type, meal_name, calories, protein, carbs, fats,
	description, is_ai_generated, log_date::text, created_at`

func scanMeal(rows pgx.Rows) (*Meal, error) {
	var m Meal
	if err := rows.Scan(
		&m.ID, &m.UserID, &m.MealType, &m.MealName,
		&m.Calories, &m.Protein, &m.Carbs, &m.Fats,
		&m.Description, &m.IsAIGenerated, &m.LogDate, &m.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PsqlRepo) List(ctx context.Context, userID string, params ListParams) (meals []Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.diet.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	query := `
			SELECT ` + mealSelectColumns + `
			FROM diet_log
			WHERE user_id = $1`
	args := []any{userID}
	if params.DateFilter != "" {
		query += ` AND log_date = $2
			ORDER BY created_at DESC LIMIT $3 OFFSET $4;`
		args = append(args, params.DateFilter, params.Limit, params.Offset)
	} else {
		query += `
			ORDER BY created_at DESC LIMIT $2 OFFSET $3;`
		args = append(args, params.Limit, params.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meals = make([]Meal, 0)
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, err
		}
		meals = append(meals, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return meals, nil
}

func (r *PsqlRepo) Get(ctx context.Context, userID, id string) (meal *Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.diet.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
			SELECT `+mealSelectColumns+`
			FROM diet_log
			WHERE id = $1 AND user_id = $2;`,
		id, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrMealNotFound
	}

	return scanMeal(rows)
}

func (r *PsqlRepo) Delete(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.diet.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	// rows affected deliberately unchecked, delete-of-absent succeeds
	_, err = r.db.Exec(ctx, `
			DELETE FROM diet_log
			WHERE id = $1 AND user_id = $2;`,
		id, userID,
	)
	return err
}

func (r *PsqlRepo) WindowedStats(ctx context.Context, userID string, days int) (stats *Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.diet.windowedStats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
			SELECT
				COUNT(*),
				COALESCE(SUM(calories), 0),
				COALESCE(SUM(protein), 0),
				COALESCE(SUM(carbs), 0),
				COALESCE(SUM(fats), 0)
			FROM diet_log
			WHERE user_id = $1 AND log_date >= $2;`,
		userID, dates.WindowStart(days),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats = &Stats{PeriodDays: days}
	if rows.Next() {
		if err := rows.Scan(
			&stats.TotalMeals, &stats.TotalCalories,
			&stats.TotalProtein, &stats.TotalCarbs, &stats.TotalFats,
		); err != nil {
			return nil, err
		}
	}
	stats.AvgDailyCalories = avgDailyCalories(stats.TotalCalories, days)

	return stats, nil
}
