package streaks

import (
	"context"

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

// seed inserts the zeroed default categories for the user, existing rows
// stay untouched.
func (r *PsqlRepo) seed(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `
			INSERT INTO user_streaks (user_id, streak_type, current_streak, longest_streak, xp_earned)
			SELECT $1, unnest($2::text[]), 0, 0, 0
			ON CONFLICT (user_id, streak_type) DO NOTHING;`,
		userID, Categories,
	)
	return err
}

const streakSelectColumns = `
	user_id, streak_type, current_streak, longest_streak, xp_earned,
	COALESCE(last_activity_date::text, '')`

func scanStreak(rows pgx.Rows) (*Streak, error) {
	var s Streak
	if err := rows.Scan(
		&s.UserID, &s.StreakType, &s.CurrentStreak, &s.LongestStreak,
		&s.XPEarned, &s.LastActivityDate,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PsqlRepo) List(ctx context.Context, userID string) (streaks []Streak, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.streaks.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := r.seed(ctx, userID); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
			SELECT `+streakSelectColumns+`
			FROM user_streaks
			WHERE user_id = $1
			ORDER BY streak_type;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	streaks = make([]Streak, 0, len(Categories))
	for rows.Next() {
		s, err := scanStreak(rows)
		if err != nil {
			return nil, err
		}
		streaks = append(streaks, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return streaks, nil
}

func (r *PsqlRepo) Increment(ctx context.Context, userID, category string) (streak *Streak, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.streaks.increment")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := r.seed(ctx, userID); err != nil {
		return nil, err
	}

	// single statement so concurrent increments never lose a bump
	rows, err := r.db.Query(ctx, `
			UPDATE user_streaks SET
				current_streak = current_streak + 1,
				longest_streak = GREATEST(longest_streak, current_streak + 1),
				xp_earned = xp_earned + $3,
				last_activity_date = $4
			WHERE user_id = $1 AND streak_type = $2
			RETURNING `+streakSelectColumns+`;`,
		userID, category, XPReward, dates.Today(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrStreakNotFound
	}

	return scanStreak(rows)
}

func (r *PsqlRepo) Reset(ctx context.Context, userID, category string) (streak *Streak, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.streaks.reset")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := r.seed(ctx, userID); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
			UPDATE user_streaks SET
				current_streak = 0
			WHERE user_id = $1 AND streak_type = $2
			RETURNING `+streakSelectColumns+`;`,
		userID, category,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrStreakNotFound
	}

	return scanStreak(rows)
}
