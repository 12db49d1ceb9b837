package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitbridge/fitbridge/internal/dailylog"
	"github.com/fitbridge/fitbridge/internal/diet"
)

func (s *IntegrationTestSuite) TestDietLogs() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	userID := "diet-user"

	meals := []diet.Meal{
		{MealType: "breakfast", MealName: "Oatmeal", Calories: 350, Protein: 12, Carbs: 60, Fats: 6},
		{MealType: "lunch", MealName: "Chicken Bowl", Calories: 650, Protein: 45, Carbs: 70, Fats: 18},
	}

	var createdIDs []string
	for _, meal := range meals {
		status, respBytes := s.doRequest(ctx, userID, "POST", "/api/diet/log", meal)
		require.Equal(t, http.StatusCreated, status)

		var created diet.MealResponse
		require.NoError(t, json.Unmarshal(respBytes, &created))
		require.True(t, created.Success)
		require.NotNil(t, created.Data)
		createdIDs = append(createdIDs, created.Data.ID)
	}

	// today view with summed macros
	status, respBytes := s.doRequest(ctx, userID, "GET", "/api/diet/logs/today", nil)
	require.Equal(t, http.StatusOK, status)
	var today diet.TodayMealsResponse
	require.NoError(t, json.Unmarshal(respBytes, &today))
	require.Len(t, today.Data, 2)
	assert.Equal(t, 1000, today.Totals.TotalCalories)
	assert.Equal(t, float64(57), today.Totals.TotalProtein)

	// stats over the window
	status, respBytes = s.doRequest(ctx, userID, "GET", "/api/diet/stats?days=7", nil)
	require.Equal(t, http.StatusOK, status)
	var stats diet.StatsResponse
	require.NoError(t, json.Unmarshal(respBytes, &stats))
	require.NotNil(t, stats.Data)
	assert.Equal(t, 2, stats.Data.TotalMeals)
	assert.Equal(t, 1000, stats.Data.TotalCalories)
	assert.Equal(t, 1000/7, stats.Data.AvgDailyCalories)

	// the daily rollup accumulated consumed calories
	status, respBytes = s.doRequest(ctx, userID, "GET", "/api/daily/logs", nil)
	require.Equal(t, http.StatusOK, status)
	var daily dailylog.ListResponse
	require.NoError(t, json.Unmarshal(respBytes, &daily))
	require.Len(t, daily.Data, 1)
	assert.Equal(t, 1000, daily.Data[0].CaloriesConsumed)
	assert.False(t, daily.Data[0].WorkoutCompleted)

	// delete one meal, the other stays
	status, _ = s.doRequest(ctx, userID, "DELETE", "/api/diet/logs/"+createdIDs[0], nil)
	require.Equal(t, http.StatusOK, status)

	status, respBytes = s.doRequest(ctx, userID, "GET", "/api/diet/logs", nil)
	require.Equal(t, http.StatusOK, status)
	var list diet.MealsListResponse
	require.NoError(t, json.Unmarshal(respBytes, &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, createdIDs[1], list.Data[0].ID)
}

func (s *IntegrationTestSuite) TestDailyLogManualApply() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	userID := "daily-user"

	status, respBytes := s.doRequest(ctx, userID, "POST", "/api/daily/log", dailylog.ApplyRequest{
		Steps: 6000,
	})
	require.Equal(t, http.StatusOK, status)

	var applied dailylog.EntryResponse
	require.NoError(t, json.Unmarshal(respBytes, &applied))
	require.NotNil(t, applied.Data)
	assert.Equal(t, 6000, applied.Data.Steps)

	// deltas accumulate on the same date
	status, respBytes = s.doRequest(ctx, userID, "POST", "/api/daily/log", dailylog.ApplyRequest{
		Steps:            1500,
		CaloriesConsumed: 200,
	})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(respBytes, &applied))
	assert.Equal(t, 7500, applied.Data.Steps)
	assert.Equal(t, 200, applied.Data.CaloriesConsumed)
}
