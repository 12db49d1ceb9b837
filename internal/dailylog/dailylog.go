package dailylog

import "errors"

var ErrDailyLogNotFound = errors.New("daily log not found")

// Entry is the per-user-per-day running total, incrementally maintained by
// the workout and diet log write paths. There is no recomputation on read.
type Entry struct {
	ID               string `json:"id"`
	UserID           string `json:"user_id"`
	LogDate          string `json:"log_date"`
	CaloriesConsumed int    `json:"calories_consumed"`
	CaloriesBurned   int    `json:"calories_burned"`
	Steps            int    `json:"steps"`
	WorkoutCompleted bool   `json:"workout_completed"`
}

// Deltas is one contribution to a daily rollup. Numeric fields add to the
// running totals; WorkoutCompleted overwrites the stored flag, but only
// when explicitly supplied.
type Deltas struct {
	CaloriesConsumed int
	CaloriesBurned   int
	Steps            int
	WorkoutCompleted *bool
}
