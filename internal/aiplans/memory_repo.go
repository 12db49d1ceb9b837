package aiplans

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemoryRepo struct {
	mu    sync.Mutex
	plans []Plan
	now   func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		now: time.Now,
	}
}

func (r *MemoryRepo) Save(_ context.Context, plan *Plan) (*Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *plan
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.now()
	}
	stored.IsActive = true

	r.plans = append(r.plans, stored)

	storedCopy := stored
	return &storedCopy, nil
}

func (r *MemoryRepo) ListActive(_ context.Context, userID string) ([]Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plans := make([]Plan, 0)
	for _, p := range r.plans {
		if p.UserID == userID && p.IsActive {
			plans = append(plans, p)
		}
	}

	sort.SliceStable(plans, func(i, j int) bool {
		return plans[i].CreatedAt.After(plans[j].CreatedAt)
	})

	return plans, nil
}

func (r *MemoryRepo) Deactivate(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.plans {
		if r.plans[i].ID == id && r.plans[i].UserID == userID {
			r.plans[i].IsActive = false
			return nil
		}
	}
	return nil
}
