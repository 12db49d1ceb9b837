package workout

import (
	"context"
	"fmt"

	"github.com/fitbridge/fitbridge/internal/dailylog"
)

type rollupApplier interface {
	Apply(ctx context.Context, userID, logDate string, deltas dailylog.Deltas) (*dailylog.Entry, error)
}

// Service couples the workout log repo with the daily rollup: every
// stored workout contributes its burned calories and marks the day's
// workout as completed before the create returns.
type Service struct {
	repo    Repo
	rollups rollupApplier
}

func NewService(repo Repo, rollups rollupApplier) *Service {
	return &Service{
		repo:    repo,
		rollups: rollups,
	}
}

func (s *Service) Create(ctx context.Context, workoutLog *Log) (*Log, error) {
	created, err := s.repo.Create(ctx, workoutLog)
	if err != nil {
		return nil, err
	}

	completed := true
	deltas := dailylog.Deltas{WorkoutCompleted: &completed}
	if created.CaloriesBurned != nil {
		deltas.CaloriesBurned = *created.CaloriesBurned
	}

	// the log write and the rollup are not transactional, a rollup
	// failure here leaves the already stored entry in place
	if _, err := s.rollups.Apply(ctx, created.UserID, created.WorkoutDate, deltas); err != nil {
		return nil, fmt.Errorf("workout log stored, daily rollup update failed: %w", err)
	}

	return created, nil
}

func (s *Service) List(ctx context.Context, userID string, params ListParams) ([]Log, error) {
	return s.repo.List(ctx, userID, params)
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Log, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *Service) WindowedStats(ctx context.Context, userID string, days int) (*Stats, error) {
	return s.repo.WindowedStats(ctx, userID, days)
}
