package workout

import "context"

var _ Repo = (*PsqlRepo)(nil)
var _ Repo = (*MemoryRepo)(nil)

type Repo interface {
	// Create stores the log, assigning id, creation timestamp and
	// workout date when absent, and returns the stored entry.
	Create(ctx context.Context, workoutLog *Log) (*Log, error)
	// List returns the user's logs ordered by workout date descending
	// (creation timestamp breaks ties), sliced by limit/offset.
	List(ctx context.Context, userID string, params ListParams) ([]Log, error)
	Get(ctx context.Context, userID, id string) (*Log, error)
	// Delete removes the log scoped to the user. Deleting an absent or
	// foreign-owned id is a no-op that still succeeds.
	Delete(ctx context.Context, userID, id string) error
	// WindowedStats aggregates logs with workout date >= today-days.
	WindowedStats(ctx context.Context, userID string, days int) (*Stats, error)
}
