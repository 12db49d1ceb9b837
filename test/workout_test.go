package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitbridge/fitbridge/internal/dailylog"
	"github.com/fitbridge/fitbridge/internal/workout"
)

func (s *IntegrationTestSuite) TestWorkoutLogs() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	userID := "workout-user"

	calories := 350
	status, respBytes := s.doRequest(ctx, userID, "POST", "/api/workout/log", workout.Log{
		Title:           "Morning Push",
		WorkoutType:     "strength",
		DurationMinutes: 45,
		CaloriesBurned:  &calories,
		Exercises:       json.RawMessage(`[{"name":"Bench Press","sets":4}]`),
	})
	require.Equal(t, http.StatusCreated, status)

	var created workout.LogResponse
	require.NoError(t, json.Unmarshal(respBytes, &created))
	require.True(t, created.Success)
	require.NotNil(t, created.Data)
	require.NotEmpty(t, created.Data.ID)
	assert.Equal(t, userID, created.Data.UserID)
	assert.NotEmpty(t, created.Data.WorkoutDate)

	// list
	status, respBytes = s.doRequest(ctx, userID, "GET", "/api/workout/logs", nil)
	require.Equal(t, http.StatusOK, status)
	var list workout.LogsListResponse
	require.NoError(t, json.Unmarshal(respBytes, &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, created.Data.ID, list.Data[0].ID)

	// get by id
	status, respBytes = s.doRequest(ctx, userID, "GET", "/api/workout/logs/"+created.Data.ID, nil)
	require.Equal(t, http.StatusOK, status)
	var got workout.LogResponse
	require.NoError(t, json.Unmarshal(respBytes, &got))
	assert.Equal(t, "Morning Push", got.Data.Title)
	assert.Equal(t, 45, got.Data.DurationMinutes)

	// stats over the default window
	status, respBytes = s.doRequest(ctx, userID, "GET", "/api/workout/stats?days=7", nil)
	require.Equal(t, http.StatusOK, status)
	var stats workout.StatsResponse
	require.NoError(t, json.Unmarshal(respBytes, &stats))
	require.NotNil(t, stats.Data)
	assert.Equal(t, 1, stats.Data.TotalWorkouts)
	assert.Equal(t, 45, stats.Data.TotalDurationMinutes)
	assert.Equal(t, 350, stats.Data.TotalCaloriesBurned)
	assert.Equal(t, 1, stats.Data.WorkoutDays)

	// the daily rollup picked up the burned calories
	status, respBytes = s.doRequest(ctx, userID, "GET", "/api/daily/logs", nil)
	require.Equal(t, http.StatusOK, status)
	var daily dailylog.ListResponse
	require.NoError(t, json.Unmarshal(respBytes, &daily))
	require.Len(t, daily.Data, 1)
	assert.Equal(t, 350, daily.Data[0].CaloriesBurned)
	assert.True(t, daily.Data[0].WorkoutCompleted)

	// delete
	status, respBytes = s.doRequest(ctx, userID, "DELETE", "/api/workout/logs/"+created.Data.ID, nil)
	require.Equal(t, http.StatusOK, status)
	var deleted workout.DeleteResponse
	require.NoError(t, json.Unmarshal(respBytes, &deleted))
	assert.Equal(t, created.Data.ID, deleted.DeletedID)

	status, _ = s.doRequest(ctx, userID, "GET", "/api/workout/logs/"+created.Data.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestWorkoutLogs_unauthorized() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	status, _ := s.doRequest(ctx, "", "GET", "/api/workout/logs", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, status)
}
