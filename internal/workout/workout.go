// Package workout stores workout log entries and their windowed statistics.
package workout

import (
	"encoding/json"
	"errors"
	"time"
)

var ErrWorkoutNotFound = errors.New("workout log not found")

// Log is a single recorded workout session. Entries are immutable once
// created, except for deletion. WorkoutDate is the calendar date the
// workout is logically about, not the moment it was recorded.
type Log struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Title           string          `json:"title"`
	WorkoutType     string          `json:"workout_type,omitempty"`
	DurationMinutes int             `json:"duration_minutes"`
	CaloriesBurned  *int            `json:"calories_burned,omitempty"`
	Exercises       json.RawMessage `json:"exercises,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	IsAIGenerated   bool            `json:"is_ai_generated"`
	WorkoutDate     string          `json:"workout_date"`
	CreatedAt       time.Time       `json:"created_at"`
}

type ListParams struct {
	Limit      int
	Offset     int
	DateFilter string // empty means no filter
}

// Stats aggregates the workouts whose date falls inside a lookback window.
type Stats struct {
	TotalWorkouts        int `json:"total_workouts"`
	TotalDurationMinutes int `json:"total_duration_minutes"`
	TotalCaloriesBurned  int `json:"total_calories_burned"`
	WorkoutDays          int `json:"workout_days"`
	PeriodDays           int `json:"period_days"`
}
