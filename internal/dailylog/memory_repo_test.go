package dailylog

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitbridge/fitbridge/internal/dates"
)

func boolPtr(b bool) *bool {
	return &b
}

func TestMemoryRepo_Apply_createsZeroedThenAdds(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	entry, err := repo.Apply(ctx, "user1", "2025-03-10", Deltas{CaloriesConsumed: 500})
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "user1", entry.UserID)
	assert.Equal(t, "2025-03-10", entry.LogDate)
	assert.Equal(t, 500, entry.CaloriesConsumed)
	assert.Equal(t, 0, entry.CaloriesBurned)
	assert.Equal(t, 0, entry.Steps)
	assert.False(t, entry.WorkoutCompleted)

	entry2, err := repo.Apply(ctx, "user1", "2025-03-10", Deltas{
		CaloriesConsumed: 200,
		CaloriesBurned:   300,
		Steps:            4000,
		WorkoutCompleted: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, entry.ID, entry2.ID)
	assert.Equal(t, 700, entry2.CaloriesConsumed)
	assert.Equal(t, 300, entry2.CaloriesBurned)
	assert.Equal(t, 4000, entry2.Steps)
	assert.True(t, entry2.WorkoutCompleted)
}

func TestMemoryRepo_Apply_workoutCompletedOnlyOverwritesWhenSet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	_, err := repo.Apply(ctx, "user1", "2025-03-10", Deltas{WorkoutCompleted: boolPtr(true)})
	require.NoError(t, err)

	// nil pointer leaves the flag alone
	entry, err := repo.Apply(ctx, "user1", "2025-03-10", Deltas{Steps: 100})
	require.NoError(t, err)
	assert.True(t, entry.WorkoutCompleted)

	entry, err = repo.Apply(ctx, "user1", "2025-03-10", Deltas{WorkoutCompleted: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, entry.WorkoutCompleted)
}

func TestMemoryRepo_Apply_orderOfDeltasIrrelevant(t *testing.T) {
	ctx := context.Background()

	deltas := make([]Deltas, 0, 20)
	total := 0
	for i := 0; i < 20; i++ {
		c := rand.Intn(1000)
		total += c
		deltas = append(deltas, Deltas{CaloriesConsumed: c})
	}

	repoA := NewMemoryRepo()
	for _, d := range deltas {
		_, err := repoA.Apply(ctx, "user1", "2025-03-10", d)
		require.NoError(t, err)
	}

	repoB := NewMemoryRepo()
	for i := len(deltas) - 1; i >= 0; i-- {
		_, err := repoB.Apply(ctx, "user1", "2025-03-10", deltas[i])
		require.NoError(t, err)
	}

	entriesA, err := repoA.List(ctx, "user1", 36500)
	require.NoError(t, err)
	entriesB, err := repoB.List(ctx, "user1", 36500)
	require.NoError(t, err)
	require.Len(t, entriesA, 1)
	require.Len(t, entriesB, 1)
	assert.Equal(t, total, entriesA[0].CaloriesConsumed)
	assert.Equal(t, total, entriesB[0].CaloriesConsumed)
}

func TestMemoryRepo_List_windowBoundaryInclusive(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	for _, daysAgo := range []int{0, 3, 7, 8, 30} {
		date := now.AddDate(0, 0, -daysAgo).Format(dates.Layout)
		_, err := repo.Apply(ctx, "user1", date, Deltas{Steps: daysAgo})
		require.NoError(t, err)
	}

	entries, err := repo.List(ctx, "user1", 7)
	require.NoError(t, err)
	// today-7 itself is inside the window, today-8 is not
	require.Len(t, entries, 3)
	assert.Equal(t, "2025-03-10", entries[0].LogDate)
	assert.Equal(t, "2025-03-07", entries[1].LogDate)
	assert.Equal(t, "2025-03-03", entries[2].LogDate)
}

func TestMemoryRepo_List_scopedToUser(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	today := dates.Today()
	_, err := repo.Apply(ctx, "user1", today, Deltas{Steps: 100})
	require.NoError(t, err)
	_, err = repo.Apply(ctx, "user2", today, Deltas{Steps: 200})
	require.NoError(t, err)

	entries, err := repo.List(ctx, "user1", 7)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 100, entries[0].Steps)

	entries, err = repo.List(ctx, "user3", 7)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMemoryRepo_Apply_concurrentWritersLoseNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	const writers = 10
	const perWriter = 50

	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		go func() {
			for j := 0; j < perWriter; j++ {
				if _, err := repo.Apply(ctx, "user1", "2025-03-10", Deltas{Steps: 1}); err != nil {
					errs <- fmt.Errorf("apply: %w", err)
					return
				}
			}
			errs <- nil
		}()
	}
	for i := 0; i < writers; i++ {
		require.NoError(t, <-errs)
	}

	entries, err := repo.List(ctx, "user1", 36500)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, writers*perWriter, entries[0].Steps)
}
