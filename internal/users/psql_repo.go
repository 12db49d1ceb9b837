package users

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fitbridge/fitbridge/internal/telemetry/tracing"
)

type PsqlRepo struct {
	db *pgxpool.Pool
}

func NewPsqlRepo(db *pgxpool.Pool) *PsqlRepo {
	return &PsqlRepo{db: db}
}

func (r *PsqlRepo) Get(ctx context.Context, userID string) (profile *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
			SELECT id, name, email, weight, height, goal, fitness_level
			FROM users
			WHERE id = $1;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrProfileNotFound
	}

	var p Profile
	if err := rows.Scan(
		&p.ID, &p.Name, &p.Email, &p.Weight, &p.Height, &p.Goal, &p.FitnessLevel,
	); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *PsqlRepo) Update(ctx context.Context, userID string, update ProfileUpdate) (profile *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
			UPDATE users SET
				name = COALESCE($2, name),
				email = COALESCE($3, email),
				weight = COALESCE($4, weight),
				height = COALESCE($5, height),
				goal = COALESCE($6, goal),
				fitness_level = COALESCE($7, fitness_level)
			WHERE id = $1
			RETURNING id, name, email, weight, height, goal, fitness_level;`,
		userID,
		update.Name, update.Email, update.Weight, update.Height,
		update.Goal, update.FitnessLevel,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrProfileNotFound
	}

	var p Profile
	if err := rows.Scan(
		&p.ID, &p.Name, &p.Email, &p.Weight, &p.Height, &p.Goal, &p.FitnessLevel,
	); err != nil {
		return nil, err
	}

	return &p, nil
}
