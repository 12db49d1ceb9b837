// Package storage wires all entity repositories to one backing mode,
// chosen once at construction. With a database configured and reachable
// the repos run on postgres; otherwise everything silently falls back
// to in-memory mode, which is a first-class demo deployment rather than
// a test stub. Construction never fails.
package storage

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/fitbridge/fitbridge/internal/aiplans"
	"github.com/fitbridge/fitbridge/internal/dailylog"
	"github.com/fitbridge/fitbridge/internal/db"
	"github.com/fitbridge/fitbridge/internal/diet"
	"github.com/fitbridge/fitbridge/internal/streaks"
	"github.com/fitbridge/fitbridge/internal/users"
	"github.com/fitbridge/fitbridge/internal/workout"
)

type Params struct {
	DatabaseURL        string
	DatabaseServiceKey string
	TracingEnabled     bool
}

type Storage struct {
	Workouts  workout.Repo
	Meals     diet.Repo
	DailyLogs dailylog.Repo
	Streaks   streaks.Repo
	Plans     aiplans.Repo
	Users     users.Repo

	pool *pgxpool.Pool
	mock bool
}

func New(ctx context.Context, params Params) *Storage {
	if params.DatabaseURL == "" || params.DatabaseServiceKey == "" {
		log.Warnln("database credentials not set, storage running in memory mode")
		return newMemory()
	}

	pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DatabaseURL:    params.DatabaseURL,
		ServiceKey:     params.DatabaseServiceKey,
		TracingEnabled: params.TracingEnabled,
	})
	if err != nil {
		log.Errorf("create db pool failed, storage falling back to memory mode: %s", err)
		return newMemory()
	}

	if err := pool.Ping(ctx); err != nil {
		log.Errorf("db ping failed, storage falling back to memory mode: %s", err)
		pool.Close()
		return newMemory()
	}

	log.Debugln("storage running in postgres mode")
	return &Storage{
		Workouts:  workout.NewPsqlRepo(pool),
		Meals:     diet.NewPsqlRepo(pool),
		DailyLogs: dailylog.NewPsqlRepo(pool),
		Streaks:   streaks.NewPsqlRepo(pool),
		Plans:     aiplans.NewPsqlRepo(pool),
		Users:     users.NewPsqlRepo(pool),
		pool:      pool,
	}
}

func newMemory() *Storage {
	return &Storage{
		Workouts:  workout.NewMemoryRepo(),
		Meals:     diet.NewMemoryRepo(),
		DailyLogs: dailylog.NewMemoryRepo(),
		Streaks:   streaks.NewMemoryRepo(),
		Plans:     aiplans.NewMemoryRepo(),
		Users:     users.NewMemoryRepo(),
		mock:      true,
	}
}

// NewMock returns a memory mode storage, used by tests and demo setups.
func NewMock() *Storage {
	return newMemory()
}

// Mock reports whether the storage runs on the in-memory fallback.
func (s *Storage) Mock() bool {
	return s.mock
}

// Pool exposes the underlying pgx pool, nil in memory mode. Used for
// pool metrics collection.
func (s *Storage) Pool() *pgxpool.Pool {
	return s.pool
}

func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
