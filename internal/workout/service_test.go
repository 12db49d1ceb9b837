package workout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitbridge/fitbridge/internal/dailylog"
)

type rollupApplierStub struct {
	applied []dailylog.Deltas
	err     error
}

func (s *rollupApplierStub) Apply(
	_ context.Context, userID, logDate string, deltas dailylog.Deltas,
) (*dailylog.Entry, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.applied = append(s.applied, deltas)
	return &dailylog.Entry{UserID: userID, LogDate: logDate}, nil
}

func TestService_Create_appliesRollupDelta(t *testing.T) {
	ctx := context.Background()
	rollups := &rollupApplierStub{}
	service := NewService(NewMemoryRepo(), rollups)

	created, err := service.Create(ctx, &Log{
		UserID:          "user1",
		Title:           "Morning Run",
		DurationMinutes: 45,
		CaloriesBurned:  intPtr(400),
		WorkoutDate:     "2025-03-10",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	require.Len(t, rollups.applied, 1)
	deltas := rollups.applied[0]
	assert.Equal(t, 400, deltas.CaloriesBurned)
	assert.Equal(t, 0, deltas.CaloriesConsumed)
	assert.Equal(t, 0, deltas.Steps)
	require.NotNil(t, deltas.WorkoutCompleted)
	assert.True(t, *deltas.WorkoutCompleted)
}

func TestService_Create_noCaloriesStillMarksWorkoutDone(t *testing.T) {
	ctx := context.Background()
	rollups := &rollupApplierStub{}
	service := NewService(NewMemoryRepo(), rollups)

	_, err := service.Create(ctx, &Log{UserID: "user1", Title: "Stretching"})
	require.NoError(t, err)

	require.Len(t, rollups.applied, 1)
	assert.Equal(t, 0, rollups.applied[0].CaloriesBurned)
	require.NotNil(t, rollups.applied[0].WorkoutCompleted)
	assert.True(t, *rollups.applied[0].WorkoutCompleted)
}

func TestService_Create_rollupFailureSurfacedLogKept(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	rollups := &rollupApplierStub{err: errors.New("rollup backend down")}
	service := NewService(repo, rollups)

	_, err := service.Create(ctx, &Log{UserID: "user1", Title: "Morning Run"})
	require.Error(t, err)

	// the log entry stays stored even though the rollup failed
	logs, listErr := repo.List(ctx, "user1", ListParams{Limit: 10})
	require.NoError(t, listErr)
	assert.Len(t, logs, 1)
}
