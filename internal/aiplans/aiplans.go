// Package aiplans keeps the accepted AI generated plans. Plans are soft
// deleted: deactivation clears the active flag, records stay.
package aiplans

import (
	"encoding/json"
	"errors"
	"time"
)

var ErrPlanNotFound = errors.New("plan not found")

// Plan kinds stored by the generator.
const (
	PlanTypeWorkout = "workout"
	PlanTypeDiet    = "diet"
)

func ValidPlanType(planType string) bool {
	return planType == PlanTypeWorkout || planType == PlanTypeDiet
}

type Plan struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	PlanType    string          `json:"plan_type"`
	Title       string          `json:"title"`
	PlanData    json.RawMessage `json:"plan_data"`
	PromptUsed  string          `json:"prompt_used,omitempty"`
	GeneratedBy string          `json:"generated_by,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}
