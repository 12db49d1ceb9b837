package dailylog

import (
	"context"

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

// Apply upserts the deltas into the user's rollup row for the given date
// in a single statement, so concurrent writers never lose increments.
func (r *PsqlRepo) Apply(ctx context.Context, userID, logDate string, deltas Deltas) (entry *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailylog.apply")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
			INSERT INTO daily_log
				(user_id, log_date, calories_consumed, calories_burned, steps, workout_completed)
			VALUES
				($1, $2, $3, $4, $5, COALESCE($6::boolean, false))
			ON CONFLICT (user_id, log_date) DO UPDATE SET
				calories_consumed = daily_log.calories_consumed + EXCLUDED.calories_consumed,
				calories_burned = daily_log.calories_burned + EXCLUDED.calories_burned,
				steps = daily_log.steps + EXCLUDED.steps,
				workout_completed = CASE
					WHEN $6::boolean IS NULL THEN daily_log.workout_completed
					ELSE $6::boolean
				END
			RETURNING id, user_id, log_date::text, calories_consumed, calories_burned, steps, workout_completed;`,
		userID, logDate,
		deltas.CaloriesConsumed, deltas.CaloriesBurned, deltas.Steps,
		deltas.WorkoutCompleted,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrDailyLogNotFound
	}

	var e Entry
	if err := rows.Scan(
		&e.ID, &e.UserID, &e.LogDate,
		&e.CaloriesConsumed, &e.CaloriesBurned, &e.Steps, &e.WorkoutCompleted,
	); err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *PsqlRepo) List(ctx context.Context, userID string, days int) (entries []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailylog.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
			SELECT id, user_id, log_date::text, calories_consumed, calories_burned, steps, workout_completed
			FROM daily_log
			WHERE user_id = $1 AND log_date >= $2
			ORDER BY log_date DESC;`,
		userID, dates.WindowStart(days),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries = make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.LogDate,
			&e.CaloriesConsumed, &e.CaloriesBurned, &e.Steps, &e.WorkoutCompleted,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
