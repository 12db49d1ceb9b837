package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitbridge/fitbridge/internal/streaks"
)

func (s *IntegrationTestSuite) TestStreaks() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	userID := "streaks-user"

	// first list seeds all categories zeroed
	status, respBytes := s.doRequest(ctx, userID, "GET", "/api/streaks", nil)
	require.Equal(t, http.StatusOK, status)
	var list streaks.StreaksListResponse
	require.NoError(t, json.Unmarshal(respBytes, &list))
	require.Len(t, list.Data, len(streaks.Categories))
	for _, streak := range list.Data {
		assert.Zero(t, streak.CurrentStreak)
		assert.Zero(t, streak.XPEarned)
	}

	// two increments
	for i := 1; i <= 2; i++ {
		status, respBytes = s.doRequest(ctx, userID, "POST", "/api/streaks/workout/increment", nil)
		require.Equal(t, http.StatusOK, status)
		var incremented streaks.StreakResponse
		require.NoError(t, json.Unmarshal(respBytes, &incremented))
		require.NotNil(t, incremented.Data)
		assert.Equal(t, i, incremented.Data.CurrentStreak)
		assert.Equal(t, i, incremented.Data.LongestStreak)
		assert.Equal(t, i*streaks.XPReward, incremented.Data.XPEarned)
		assert.NotEmpty(t, incremented.Data.LastActivityDate)
	}

	// reset zeroes current, longest and XP survive
	status, respBytes = s.doRequest(ctx, userID, "POST", "/api/streaks/workout/reset", nil)
	require.Equal(t, http.StatusOK, status)
	var reset streaks.StreakResponse
	require.NoError(t, json.Unmarshal(respBytes, &reset))
	require.NotNil(t, reset.Data)
	assert.Zero(t, reset.Data.CurrentStreak)
	assert.Equal(t, 2, reset.Data.LongestStreak)
	assert.Equal(t, 2*streaks.XPReward, reset.Data.XPEarned)

	// unknown category
	status, _ = s.doRequest(ctx, userID, "POST", "/api/streaks/gardening/increment", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}
