// Package users holds the fitness profile attached to a user id.
package users

import "errors"

var ErrProfileNotFound = errors.New("user profile not found")

type Profile struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Weight       float64 `json:"weight"`
	Height       float64 `json:"height"`
	Goal         string  `json:"goal"`
	FitnessLevel string  `json:"fitness_level"`
}

// ProfileUpdate carries only the fields the caller wants changed, nil
// fields stay as they are.
type ProfileUpdate struct {
	Name         *string  `json:"name"`
	Email        *string  `json:"email"`
	Weight       *float64 `json:"weight"`
	Height       *float64 `json:"height"`
	Goal         *string  `json:"goal"`
	FitnessLevel *string  `json:"fitness_level"`
}

// DefaultProfile is what the memory mode serves for a user that never
// stored anything, demo deployments always have a profile to show.
func DefaultProfile(userID string) *Profile {
	return &Profile{
		ID:           userID,
		Name:         "Demo User",
		Email:        "demo@fitbridge.app",
		Weight:       75,
		Height:       175,
		Goal:         "Muscle Gain",
		FitnessLevel: "Intermediate",
	}
}
