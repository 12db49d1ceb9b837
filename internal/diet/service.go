package diet

import (
	"context"
	"fmt"

	"github.com/fitbridge/fitbridge/internal/dailylog"
	"github.com/fitbridge/fitbridge/internal/dates"
)

// todayMealsLimit bounds the today view, no user logs anywhere near this
// many meals in one day.
const todayMealsLimit = 200

type rollupApplier interface {
	Apply(ctx context.Context, userID, logDate string, deltas dailylog.Deltas) (*dailylog.Entry, error)
}

// Service couples the meal repo with the daily rollup: every stored meal
// adds its calories to the day's consumed total before the create returns.
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

func (s *Service) Create(ctx context.Context, meal *Meal) (*Meal, error) {
	created, err := s.repo.Create(ctx, meal)
	if err != nil {
		return nil, err
	}

	// the log write and the rollup are not transactional, a rollup
	// failure here leaves the already stored entry in place
	deltas := dailylog.Deltas{CaloriesConsumed: created.Calories}
	if _, err := s.rollups.Apply(ctx, created.UserID, created.LogDate, deltas); err != nil {
		return nil, fmt.Errorf("meal log stored, daily rollup update failed: %w", err)
	}

	return created, nil
}

func (s *Service) List(ctx context.Context, userID string, params ListParams) ([]Meal, error) {
	return s.repo.List(ctx, userID, params)
}

// TodayMeals returns the meals logged for today's date plus their macro totals.
func (s *Service) TodayMeals(ctx context.Context, userID string) ([]Meal, Totals, error) {
	meals, err := s.repo.List(ctx, userID, ListParams{
		Limit:      todayMealsLimit,
		DateFilter: dates.Today(),
	})
	if err != nil {
		return nil, Totals{}, err
	}
	return meals, SumTotals(meals), nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Meal, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *Service) WindowedStats(ctx context.Context, userID string, days int) (*Stats, error) {
	return s.repo.WindowedStats(ctx, userID, days)
}
