package users

import "context"

var _ Repo = (*PsqlRepo)(nil)
var _ Repo = (*MemoryRepo)(nil)

type Repo interface {
	// Get returns the user's profile. The memory mode serves
	// DefaultProfile for users with no stored profile, the persistent
	// mode returns ErrProfileNotFound.
	Get(ctx context.Context, userID string) (*Profile, error)
	// Update changes the supplied fields and returns the new profile.
	Update(ctx context.Context, userID string, update ProfileUpdate) (*Profile, error)
}
