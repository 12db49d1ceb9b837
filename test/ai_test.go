package test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitbridge/fitbridge/internal/ai"
	"github.com/fitbridge/fitbridge/internal/chat"
)

func (s *IntegrationTestSuite) TestAIStatus() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	status, respBytes := s.doRequest(ctx, "ai-user", "GET", "/api/ai/status", nil)
	require.Equal(t, http.StatusOK, status)

	var statusResp ai.StatusResponse
	require.NoError(t, json.Unmarshal(respBytes, &statusResp))
	assert.Equal(t, ai.ProviderMock, statusResp.Provider)
	assert.True(t, statusResp.Ready)
}

func (s *IntegrationTestSuite) TestGeneratePlan() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	userID := "ai-user"

	status, respBytes := s.doRequest(ctx, userID, "POST", "/api/ai/generate", ai.GeneratePlanRequest{
		UserDescription: "3 day beginner split, no equipment",
		PlanType:        "workout",
	})
	require.Equal(t, http.StatusOK, status)

	var genResp ai.GeneratePlanResponse
	require.NoError(t, json.Unmarshal(respBytes, &genResp))
	require.True(t, genResp.Success, "generate failed: %s", genResp.Error)
	require.NotNil(t, genResp.Plan)
	assert.Contains(t, genResp.Plan, "schedule")

	// unknown plan type still rides a 200 with a failure envelope
	status, respBytes = s.doRequest(ctx, userID, "POST", "/api/ai/generate", ai.GeneratePlanRequest{
		UserDescription: "anything",
		PlanType:        "cardio",
	})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(respBytes, &genResp))
	assert.False(t, genResp.Success)
	assert.NotEmpty(t, genResp.Error)

	// empty description is a plain validation error
	status, _ = s.doRequest(ctx, userID, "POST", "/api/ai/generate", ai.GeneratePlanRequest{
		PlanType: "workout",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestChat() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()

	// chat works without an Authorization header
	status, respBytes := s.doRequest(ctx, "", "POST", "/api/chat/send", chat.Request{
		Message: "How many rest days per week?",
	})
	require.Equal(t, http.StatusOK, status)

	var sendResp chat.SendResponse
	require.NoError(t, json.Unmarshal(respBytes, &sendResp))
	assert.True(t, sendResp.Success)
	assert.NotEmpty(t, sendResp.Response)

	status, respBytes = s.doRequest(ctx, "", "GET", "/api/chat/suggestions", nil)
	require.Equal(t, http.StatusOK, status)
	var suggestionsResp chat.SuggestionsResponse
	require.NoError(t, json.Unmarshal(respBytes, &suggestionsResp))
	assert.NotEmpty(t, suggestionsResp.Suggestions)
}

func (s *IntegrationTestSuite) TestChatStream() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()

	status, respBytes := s.doRequest(ctx, "chat-user", "POST", "/api/chat/stream", chat.Request{
		Message: "Suggest a warmup routine",
	})
	require.Equal(t, http.StatusOK, status)

	var events []map[string]any
	for _, frame := range strings.Split(string(respBytes), "\n\n") {
		if frame == "" {
			continue
		}
		require.True(t, strings.HasPrefix(frame, "data: "), "unexpected frame: %q", frame)
		var event map[string]any
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(frame, "data: ")), &event))
		events = append(events, event)
	}

	require.Greater(t, len(events), 1)
	for _, event := range events[:len(events)-1] {
		assert.Contains(t, event, "content")
	}
	assert.Equal(t, map[string]any{"done": true}, events[len(events)-1])
}
