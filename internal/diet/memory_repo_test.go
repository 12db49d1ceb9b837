package diet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitbridge/fitbridge/internal/dates"
)

func TestMemoryRepo_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	created, err := repo.Create(ctx, &Meal{
		UserID:   "user1",
		MealType: "Breakfast",
		MealName: "Oatmeal",
		Calories: 350,
		Protein:  12,
		Carbs:    55,
		Fats:     8,
		LogDate:  "2025-12-21",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.Get(ctx, "user1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = repo.Get(ctx, "user2", created.ID)
	assert.ErrorIs(t, err, ErrMealNotFound)
}

func TestMemoryRepo_List_orderedByCreationNotLogDate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	// the oldest created meal carries the newest log date
	for i, m := range []Meal{
		{UserID: "user1", MealName: "first", LogDate: "2025-03-12"},
		{UserID: "user1", MealName: "second", LogDate: "2025-03-10"},
		{UserID: "user1", MealName: "third", LogDate: "2025-03-11"},
	} {
		meal := m
		meal.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		_, err := repo.Create(ctx, &meal)
		require.NoError(t, err)
	}

	meals, err := repo.List(ctx, "user1", ListParams{Limit: 10})
	require.NoError(t, err)
	require.Len(t, meals, 3)
	assert.Equal(t, "third", meals[0].MealName)
	assert.Equal(t, "second", meals[1].MealName)
	assert.Equal(t, "first", meals[2].MealName)
}

func TestMemoryRepo_Delete_idempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	created, err := repo.Create(ctx, &Meal{UserID: "user1", MealName: "Oatmeal"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "user1", created.ID))
	assert.NoError(t, repo.Delete(ctx, "user1", created.ID))
	assert.NoError(t, repo.Delete(ctx, "user1", "no-such-id"))
}

func TestMemoryRepo_WindowedStats_floorDivision(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	// a single 700 kcal meal averaged over a 7 day window is 100,
	// even though only one day has data
	_, err := repo.Create(ctx, &Meal{
		UserID:   "user1",
		MealName: "Big Lunch",
		Calories: 700,
		LogDate:  dates.Today(),
	})
	require.NoError(t, err)

	stats, err := repo.WindowedStats(ctx, "user1", 7)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalMeals)
	assert.Equal(t, 700, stats.TotalCalories)
	assert.Equal(t, 100, stats.AvgDailyCalories)
	assert.Equal(t, 7, stats.PeriodDays)
}

func TestMemoryRepo_WindowedStats_boundaryAndMacros(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	dayOf := func(daysAgo int) string {
		return now.AddDate(0, 0, -daysAgo).Format(dates.Layout)
	}

	for _, m := range []Meal{
		{UserID: "user1", MealName: "in", Calories: 500, Protein: 30, Carbs: 40, Fats: 10, LogDate: dayOf(0)},
		{UserID: "user1", MealName: "boundary", Calories: 200, Protein: 5, Carbs: 20, Fats: 2, LogDate: dayOf(7)},
		{UserID: "user1", MealName: "out", Calories: 900, Protein: 50, Carbs: 80, Fats: 30, LogDate: dayOf(8)},
	} {
		meal := m
		_, err := repo.Create(ctx, &meal)
		require.NoError(t, err)
	}

	stats, err := repo.WindowedStats(ctx, "user1", 7)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalMeals)
	assert.Equal(t, 700, stats.TotalCalories)
	assert.Equal(t, 35.0, stats.TotalProtein)
	assert.Equal(t, 60.0, stats.TotalCarbs)
	assert.Equal(t, 12.0, stats.TotalFats)
	assert.Equal(t, 100, stats.AvgDailyCalories)
}

func TestAvgDailyCalories(t *testing.T) {
	assert.Equal(t, 100, avgDailyCalories(700, 7))
	assert.Equal(t, 99, avgDailyCalories(699, 7))
	assert.Equal(t, 0, avgDailyCalories(6, 7))
	assert.Equal(t, 700, avgDailyCalories(700, 0))
}
