package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitbridge/fitbridge/internal/aiplans"
)

func (s *IntegrationTestSuite) TestAIPlans() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	userID := "plans-user"

	status, respBytes := s.doRequest(ctx, userID, "POST", "/api/ai/plans", aiplans.Plan{
		PlanType: aiplans.PlanTypeWorkout,
		Title:    "3-Day Split",
		PlanData: json.RawMessage(`{"schedule":[{"dayTitle":"Day 1"}]}`),
	})
	require.Equal(t, http.StatusCreated, status)

	var saved aiplans.PlanResponse
	require.NoError(t, json.Unmarshal(respBytes, &saved))
	require.True(t, saved.Success)
	require.NotNil(t, saved.Data)
	assert.True(t, saved.Data.IsActive)

	status, respBytes = s.doRequest(ctx, userID, "GET", "/api/ai/plans", nil)
	require.Equal(t, http.StatusOK, status)
	var list aiplans.PlansListResponse
	require.NoError(t, json.Unmarshal(respBytes, &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "3-Day Split", list.Data[0].Title)

	status, respBytes = s.doRequest(ctx, userID, "DELETE", "/api/ai/plans/"+saved.Data.ID, nil)
	require.Equal(t, http.StatusOK, status)
	var deactivated aiplans.DeactivateResponse
	require.NoError(t, json.Unmarshal(respBytes, &deactivated))
	assert.Equal(t, saved.Data.ID, deactivated.DeactivatedID)

	status, respBytes = s.doRequest(ctx, userID, "GET", "/api/ai/plans", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(respBytes, &list))
	assert.Empty(t, list.Data)

	// deactivating a missing plan is still a success
	status, _ = s.doRequest(ctx, userID, "DELETE", "/api/ai/plans/no-such-plan", nil)
	assert.Equal(t, http.StatusOK, status)
}
