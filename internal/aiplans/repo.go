package aiplans

import "context"

var _ Repo = (*PsqlRepo)(nil)
var _ Repo = (*MemoryRepo)(nil)

type Repo interface {
	// Save stores the plan active, assigning id and creation timestamp
	// when absent, and returns the stored record.
	Save(ctx context.Context, plan *Plan) (*Plan, error)
	// ListActive returns the user's active plans, newest first.
	ListActive(ctx context.Context, userID string) ([]Plan, error)
	// Deactivate clears the active flag. Absent or foreign-owned ids
	// are a no-op that still succeeds.
	Deactivate(ctx context.Context, userID, id string) error
}
