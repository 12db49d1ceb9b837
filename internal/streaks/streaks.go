// Package streaks tracks per-category consecutive-day counters and the
// experience points they earn.
package streaks

import "errors"

var ErrStreakNotFound = errors.New("streak not found")

// XPReward is granted on every streak increment.
const XPReward = 10

// Categories every user gets seeded with on first touch.
var Categories = []string{"workout", "diet", "login", "steps"}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Streak is one category counter. LongestStreak never decreases and is
// always >= CurrentStreak.
type Streak struct {
	UserID           string `json:"user_id"`
	StreakType       string `json:"streak_type"`
	CurrentStreak    int    `json:"current_streak"`
	LongestStreak    int    `json:"longest_streak"`
	XPEarned         int    `json:"xp_earned"`
	LastActivityDate string `json:"last_activity_date,omitempty"`
}
