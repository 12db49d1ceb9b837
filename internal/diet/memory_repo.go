package diet

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fitbridge/fitbridge/internal/dates"
)

type MemoryRepo struct {
	mu    sync.Mutex
	meals []Meal
	now   func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		now: time.Now,
	}
}

func (r *MemoryRepo) Create(_ context.Context, meal *Meal) (*Meal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *meal
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.now()
	}
	if stored.LogDate == "" {
		stored.LogDate = r.now().Format(dates.Layout)
	}

	r.meals = append(r.meals, stored)

	storedCopy := stored
	return &storedCopy, nil
}

func (r *MemoryRepo) List(_ context.Context, userID string, params ListParams) ([]Meal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]Meal, 0)
	for _, m := range r.meals {
		if m.UserID != userID {
			continue
		}
		if params.DateFilter != "" && m.LogDate != params.DateFilter {
			continue
		}
		matched = append(matched, m)
	}

	// newest meal first, by creation time rather than log date
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if params.Offset >= len(matched) {
		return []Meal{}, nil
	}
	end := params.Offset + params.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[params.Offset:end], nil
}

func (r *MemoryRepo) Get(_ context.Context, userID, id string) (*Meal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.meals {
		if m.ID == id && m.UserID == userID {
			mealCopy := m
			return &mealCopy, nil
		}
	}
	return nil, ErrMealNotFound
}

func (r *MemoryRepo) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, m := range r.meals {
		if m.ID == id && m.UserID == userID {
			r.meals = append(r.meals[:i], r.meals[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *MemoryRepo) WindowedStats(_ context.Context, userID string, days int) (*Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	startDate := r.now().AddDate(0, 0, -days).Format(dates.Layout)

	stats := &Stats{PeriodDays: days}
	for _, m := range r.meals {
		if m.UserID != userID || m.LogDate < startDate {
			continue
		}
		stats.TotalMeals++
		stats.TotalCalories += m.Calories
		stats.TotalProtein += m.Protein
		stats.TotalCarbs += m.Carbs
		stats.TotalFats += m.Fats
	}
	stats.AvgDailyCalories = avgDailyCalories(stats.TotalCalories, days)

	return stats, nil
}

// avgDailyCalories divides by the requested window length, days with no
// data included, with floor semantics.
func avgDailyCalories(totalCalories, days int) int {
	if days < 1 {
		days = 1
	}
	return totalCalories / days
}
