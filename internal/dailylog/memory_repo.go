package dailylog

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fitbridge/fitbridge/internal/dates"
)

// MemoryRepo keeps the daily rollups in process memory. It backs the
// mock storage mode and is scoped to the process lifetime.
type MemoryRepo struct {
	mu      sync.Mutex
	entries map[string]*Entry // keyed by userID_logDate
	now     func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		entries: make(map[string]*Entry),
		now:     time.Now,
	}
}

func rollupKey(userID, logDate string) string {
	return fmt.Sprintf("%s_%s", userID, logDate)
}

func (r *MemoryRepo) Apply(_ context.Context, userID, logDate string, deltas Deltas) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := rollupKey(userID, logDate)
	entry, ok := r.entries[key]
	if !ok {
		entry = &Entry{
			ID:      uuid.NewString(),
			UserID:  userID,
			LogDate: logDate,
		}
		r.entries[key] = entry
	}

	entry.CaloriesConsumed += deltas.CaloriesConsumed
	entry.CaloriesBurned += deltas.CaloriesBurned
	entry.Steps += deltas.Steps
	if deltas.WorkoutCompleted != nil {
		entry.WorkoutCompleted = *deltas.WorkoutCompleted
	}

	entryCopy := *entry
	return &entryCopy, nil
}

func (r *MemoryRepo) List(_ context.Context, userID string, days int) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	startDate := r.now().AddDate(0, 0, -days).Format(dates.Layout)

	entries := make([]Entry, 0)
	for _, entry := range r.entries {
		if entry.UserID == userID && entry.LogDate >= startDate {
			entries = append(entries, *entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LogDate > entries[j].LogDate
	})

	return entries, nil
}
