package streaks

import "context"

var _ Repo = (*PsqlRepo)(nil)
var _ Repo = (*MemoryRepo)(nil)

// Repo seeds the default categories with zeroed counters the first time
// a user is touched, in both storage modes, so increments and listings
// never fail on a fresh user.
type Repo interface {
	List(ctx context.Context, userID string) ([]Streak, error)
	// Increment bumps the category counter by one, raises the longest
	// streak when passed, grants XPReward and stamps today as the last
	// activity date.
	Increment(ctx context.Context, userID, category string) (*Streak, error)
	// Reset zeroes the current counter, longest streak and XP stay.
	Reset(ctx context.Context, userID, category string) (*Streak, error)
}
