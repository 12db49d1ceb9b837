package dailylog

import "context"

var _ Repo = (*PsqlRepo)(nil)
var _ Repo = (*MemoryRepo)(nil)

type Repo interface {
	// Apply folds the deltas into the rollup for (userID, logDate),
	// creating a zeroed record first if none exists yet.
	Apply(ctx context.Context, userID, logDate string, deltas Deltas) (*Entry, error)
	// List returns the rollups with log date >= today-days, newest date first.
	List(ctx context.Context, userID string, days int) ([]Entry, error)
}
