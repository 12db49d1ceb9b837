package diet

import "context"

var _ Repo = (*PsqlRepo)(nil)
var _ Repo = (*MemoryRepo)(nil)

type Repo interface {
	// Create stores the meal, assigning id, creation timestamp and log
	// date when absent, and returns the stored entry.
	Create(ctx context.Context, meal *Meal) (*Meal, error)
	// List returns the user's meals ordered by creation timestamp
	// descending, optionally filtered to one log date, sliced by
	// limit/offset.
	List(ctx context.Context, userID string, params ListParams) ([]Meal, error)
	Get(ctx context.Context, userID, id string) (*Meal, error)
	// Delete removes the meal scoped to the user. Deleting an absent or
	// foreign-owned id is a no-op that still succeeds.
	Delete(ctx context.Context, userID, id string) error
	// WindowedStats aggregates meals with log date >= today-days.
	WindowedStats(ctx context.Context, userID string, days int) (*Stats, error)
}
