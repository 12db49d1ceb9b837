package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitbridge/fitbridge/internal/users"
)

func (s *IntegrationTestSuite) TestUserProfile() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	// seeded by the suite init script
	userID := "profile-user"

	status, respBytes := s.doRequest(ctx, userID, "GET", "/api/user/profile", nil)
	require.Equal(t, http.StatusOK, status)

	var profile users.ProfileResponse
	require.NoError(t, json.Unmarshal(respBytes, &profile))
	require.NotNil(t, profile.Data)
	assert.Equal(t, "Integration User", profile.Data.Name)
	assert.Equal(t, float64(80), profile.Data.Weight)

	weight := 78.5
	goal := "Muscle Gain"
	status, respBytes = s.doRequest(ctx, userID, "PUT", "/api/user/profile", users.ProfileUpdate{
		Weight: &weight,
		Goal:   &goal,
	})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(respBytes, &profile))
	assert.Equal(t, 78.5, profile.Data.Weight)
	assert.Equal(t, "Muscle Gain", profile.Data.Goal)
	// untouched fields stay
	assert.Equal(t, "Integration User", profile.Data.Name)
}

func (s *IntegrationTestSuite) TestUserProfile_notFound() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	status, _ := s.doRequest(ctx, "no-such-user", "GET", "/api/user/profile", nil)
	assert.Equal(s.T(), http.StatusNotFound, status)
}
