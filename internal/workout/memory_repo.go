package workout

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fitbridge/fitbridge/internal/dates"
)

type MemoryRepo struct {
	mu   sync.Mutex
	logs []Log
	now  func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		now: time.Now,
	}
}

func (r *MemoryRepo) Create(_ context.Context, workoutLog *Log) (*Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *workoutLog
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.now()
	}
	if stored.WorkoutDate == "" {
		stored.WorkoutDate = r.now().Format(dates.Layout)
	}

	r.logs = append(r.logs, stored)

	storedCopy := stored
	return &storedCopy, nil
}

func (r *MemoryRepo) List(_ context.Context, userID string, params ListParams) ([]Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]Log, 0)
	for _, l := range r.logs {
		if l.UserID != userID {
			continue
		}
		if params.DateFilter != "" && l.WorkoutDate != params.DateFilter {
			continue
		}
		matched = append(matched, l)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].WorkoutDate != matched[j].WorkoutDate {
			return matched[i].WorkoutDate > matched[j].WorkoutDate
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return paginate(matched, params.Limit, params.Offset), nil
}

func paginate(logs []Log, limit, offset int) []Log {
	if offset >= len(logs) {
		return []Log{}
	}
	end := offset + limit
	if end > len(logs) {
		end = len(logs)
	}
	return logs[offset:end]
}

func (r *MemoryRepo) Get(_ context.Context, userID, id string) (*Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range r.logs {
		if l.ID == id && l.UserID == userID {
			logCopy := l
			return &logCopy, nil
		}
	}
	return nil, ErrWorkoutNotFound
}

func (r *MemoryRepo) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, l := range r.logs {
		if l.ID == id && l.UserID == userID {
			r.logs = append(r.logs[:i], r.logs[i+1:]...)
			return nil
		}
	}
	// absent entries delete as a no-op
	return nil
}

func (r *MemoryRepo) WindowedStats(_ context.Context, userID string, days int) (*Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	startDate := r.now().AddDate(0, 0, -days).Format(dates.Layout)

	stats := &Stats{PeriodDays: days}
	workoutDays := make(map[string]struct{})
	for _, l := range r.logs {
		if l.UserID != userID || l.WorkoutDate < startDate {
			continue
		}
		stats.TotalWorkouts++
		stats.TotalDurationMinutes += l.DurationMinutes
		if l.CaloriesBurned != nil {
			stats.TotalCaloriesBurned += *l.CaloriesBurned
		}
		workoutDays[l.WorkoutDate] = struct{}{}
	}
	stats.WorkoutDays = len(workoutDays)

	return stats, nil
}
