// Package diet stores meal log entries, their windowed statistics and
// the current day totals.
package diet

import (
	"errors"
	"time"
)

var ErrMealNotFound = errors.New("meal log not found")

// Meal is a single logged meal. LogDate is the calendar date the meal
// belongs to; listing order is by creation timestamp, not by log date.
type Meal struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	MealType      string    `json:"meal_type"`
	MealName      string    `json:"meal_name"`
	Calories      int       `json:"calories"`
	Protein       float64   `json:"protein"`
	Carbs         float64   `json:"carbs"`
	Fats          float64   `json:"fats"`
	Description   string    `json:"description,omitempty"`
	IsAIGenerated bool      `json:"is_ai_generated"`
	LogDate       string    `json:"log_date"`
	CreatedAt     time.Time `json:"created_at"`
}

type ListParams struct {
	Limit      int
	Offset     int
	DateFilter string // empty means no filter
}

// Stats aggregates the meals whose log date falls inside a lookback window.
// AvgDailyCalories divides the calorie total by the requested window length
// with integer floor division, regardless of how many days actually have data.
type Stats struct {
	TotalMeals       int     `json:"total_meals"`
	TotalCalories    int     `json:"total_calories"`
	TotalProtein     float64 `json:"total_protein"`
	TotalCarbs       float64 `json:"total_carbs"`
	TotalFats        float64 `json:"total_fats"`
	AvgDailyCalories int     `json:"avg_daily_calories"`
	PeriodDays       int     `json:"period_days"`
}

// Totals sums the macros of a set of meals, used for the today view.
type Totals struct {
	TotalCalories int     `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein"`
	TotalCarbs    float64 `json:"total_carbs"`
	TotalFats     float64 `json:"total_fats"`
}

func SumTotals(meals []Meal) Totals {
	var t Totals
	for _, m := range meals {
		t.TotalCalories += m.Calories
		t.TotalProtein += m.Protein
		t.TotalCarbs += m.Carbs
		t.TotalFats += m.Fats
	}
	return t
}
