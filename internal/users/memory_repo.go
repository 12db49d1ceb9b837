package users

import (
	"context"
	"sync"
)

type MemoryRepo struct {
	mu       sync.Mutex
	profiles map[string]*Profile
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		profiles: make(map[string]*Profile),
	}
}

func (r *MemoryRepo) Get(_ context.Context, userID string) (*Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return DefaultProfile(userID), nil
	}
	profileCopy := *profile
	return &profileCopy, nil
}

func (r *MemoryRepo) Update(_ context.Context, userID string, update ProfileUpdate) (*Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		profile = DefaultProfile(userID)
		r.profiles[userID] = profile
	}

	applyUpdate(profile, update)

	profileCopy := *profile
	return &profileCopy, nil
}

func applyUpdate(profile *Profile, update ProfileUpdate) {
	if update.Name != nil {
		profile.Name = *update.Name
	}
	if update.Email != nil {
		profile.Email = *update.Email
	}
	if update.Weight != nil {
		profile.Weight = *update.Weight
	}
	if update.Height != nil {
		profile.Height = *update.Height
	}
	if update.Goal != nil {
		profile.Goal = *update.Goal
	}
	if update.FitnessLevel != nil {
		profile.FitnessLevel = *update.FitnessLevel
	}
}
