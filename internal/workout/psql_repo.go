package workout

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

func (r *PsqlRepo) Create(ctx context.Context, workoutLog *Log) (created *Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	stored := *workoutLog
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	if stored.WorkoutDate == "" {
		stored.WorkoutDate = dates.Today()
	}

	rows, err := r.db.Query(ctx, `
			INSERT INTO workout_log
				(id, user_id, title, workout_type, duration_minutes, calories_burned,
				 exercises, notes, is_ai_generated, workout_date, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id;`,
		stored.ID, stored.UserID, stored.Title, stored.WorkoutType,
		stored.DurationMinutes, stored.CaloriesBurned,
		stored.Exercises, stored.Notes, stored.IsAIGenerated,
		stored.WorkoutDate, stored.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrWorkoutNotFound
	}
	if err := rows.Scan(&stored.ID); err != nil {
		return nil, err
	}

	return &stored, nil
}

const workoutSelectColumns = `
	id, user_id, title, workout_type, duration_minutes, calories_burned,
	exercises, notes, is_ai_generated, workout_date::text, created_at`

func scanWorkoutLog(rows pgx.Rows) (*Log, error) {
	var l Log
	if err := rows.Scan(
		&l.ID, &l.UserID, &l.Title, &l.WorkoutType, &l.DurationMinutes,
		&l.CaloriesBurned, &l.Exercises, &l.Notes, &l.IsAIGenerated,
		&l.WorkoutDate, &l.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *PsqlRepo) List(ctx context.Context, userID string, params ListParams) (logs []Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	query := `
			SELECT ` + workoutSelectColumns + `
			FROM workout_log
			WHERE user_id = $1`
	args := []any{userID}
	if params.DateFilter != "" {
		query += ` AND workout_date = $2
			ORDER BY workout_date DESC, created_at DESC LIMIT $3 OFFSET $4;`
		args = append(args, params.DateFilter, params.Limit, params.Offset)
	} else {
		query += `
			ORDER BY workout_date DESC, created_at DESC LIMIT $2 OFFSET $3;`
		args = append(args, params.Limit, params.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs = make([]Log, 0)
	for rows.Next() {
		l, err := scanWorkoutLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *PsqlRepo) Get(ctx context.Context, userID, id string) (workoutLog *Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
			SELECT `+workoutSelectColumns+`
			FROM workout_log
			WHERE id = $1 AND user_id = $2;`,
		id, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrWorkoutNotFound
	}

	return scanWorkoutLog(rows)
}

func (r *PsqlRepo) Delete(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	// rows affected deliberately unchecked, delete-of-absent succeeds
	_, err = r.db.Exec(ctx, `
			DELETE FROM workout_log
			WHERE id = $1 AND user_id = $2;`,
		id, userID,
	)
	return err
}

func (r *PsqlRepo) WindowedStats(ctx context.Context, userID string, days int) (stats *Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.windowedStats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
			SELECT
				COUNT(*),
				COALESCE(SUM(duration_minutes), 0),
				COALESCE(SUM(calories_burned), 0),
				COUNT(DISTINCT workout_date)
			FROM workout_log
			WHERE user_id = $1 AND workout_date >= $2;`,
		userID, dates.WindowStart(days),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return &Stats{PeriodDays: days}, nil
	}

	stats = &Stats{PeriodDays: days}
	if err := rows.Scan(
		&stats.TotalWorkouts, &stats.TotalDurationMinutes,
		&stats.TotalCaloriesBurned, &stats.WorkoutDays,
	); err != nil {
		return nil, err
	}

	return stats, nil
}
