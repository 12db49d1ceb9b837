package streaks

import (
	"context"
	"sync"
	"time"

	"github.com/fitbridge/fitbridge/internal/dates"
)

type MemoryRepo struct {
	mu      sync.Mutex
	streaks map[string]map[string]*Streak // userID -> category -> streak
	now     func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		streaks: make(map[string]map[string]*Streak),
		now:     time.Now,
	}
}

// seedLocked creates the zeroed default categories for a user seen for
// the first time. Callers hold the mutex.
func (r *MemoryRepo) seedLocked(userID string) map[string]*Streak {
	userStreaks, ok := r.streaks[userID]
	if ok {
		return userStreaks
	}
	userStreaks = make(map[string]*Streak, len(Categories))
	for _, category := range Categories {
		userStreaks[category] = &Streak{
			UserID:     userID,
			StreakType: category,
		}
	}
	r.streaks[userID] = userStreaks
	return userStreaks
}

func (r *MemoryRepo) List(_ context.Context, userID string) ([]Streak, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userStreaks := r.seedLocked(userID)

	streaks := make([]Streak, 0, len(Categories))
	for _, category := range Categories {
		streaks = append(streaks, *userStreaks[category])
	}
	return streaks, nil
}

func (r *MemoryRepo) Increment(_ context.Context, userID, category string) (*Streak, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	streak, ok := r.seedLocked(userID)[category]
	if !ok {
		return nil, ErrStreakNotFound
	}

	streak.CurrentStreak++
	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}
	streak.XPEarned += XPReward
	streak.LastActivityDate = r.now().Format(dates.Layout)

	streakCopy := *streak
	return &streakCopy, nil
}

func (r *MemoryRepo) Reset(_ context.Context, userID, category string) (*Streak, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	streak, ok := r.seedLocked(userID)[category]
	if !ok {
		return nil, ErrStreakNotFound
	}

	streak.CurrentStreak = 0

	streakCopy := *streak
	return &streakCopy, nil
}
