package ai

import (
	"context"
	"fmt"
	"strings"
)

// Canned responses served in mock mode, shaped exactly like real
// provider output so the parsing path stays the same.
const mockWorkoutPlanJSON = `{
	"title": "Full Body Strength Program",
	"duration": "4 weeks",
	"difficulty": "Intermediate",
	"schedule": [
		{
			"dayTitle": "Day 1: Upper Body Push",
			"exercises": [
				{"name": "Bench Press", "sets": 4, "reps": "8-10", "notes": "Focus on controlled movement", "description": "Lie on bench, grip bar shoulder-width apart, lower to chest and push up"},
				{"name": "Overhead Press", "sets": 3, "reps": "8-10", "notes": "Keep core tight", "description": "Stand with feet shoulder-width, press barbell overhead"},
				{"name": "Incline Dumbbell Press", "sets": 3, "reps": "10-12", "notes": "30-45 degree angle", "description": "Press dumbbells on incline bench"},
				{"name": "Tricep Dips", "sets": 3, "reps": "12-15", "notes": "Use parallel bars or bench", "description": "Lower body by bending elbows, push back up"},
				{"name": "Lateral Raises", "sets": 3, "reps": "12-15", "notes": "Light weight, control the movement", "description": "Raise dumbbells to shoulder height laterally"}
			]
		},
		{
			"dayTitle": "Day 2: Lower Body",
			"exercises": [
				{"name": "Barbell Squats", "sets": 4, "reps": "8-10", "notes": "Go parallel or below", "description": "Squat with barbell on upper back"},
				{"name": "Romanian Deadlift", "sets": 3, "reps": "10-12", "notes": "Keep slight bend in knees", "description": "Hinge at hips with barbell"},
				{"name": "Leg Press", "sets": 3, "reps": "12-15", "notes": "Full range of motion", "description": "Push weight on leg press machine"},
				{"name": "Walking Lunges", "sets": 3, "reps": "10 each leg", "notes": "Keep torso upright", "description": "Step forward into lunge, alternate legs"},
				{"name": "Calf Raises", "sets": 4, "reps": "15-20", "notes": "Pause at top", "description": "Rise onto toes, lower with control"}
			]
		},
		{
			"dayTitle": "Day 3: Upper Body Pull",
			"exercises": [
				{"name": "Pull-ups", "sets": 4, "reps": "6-10", "notes": "Use assistance if needed", "description": "Hang from bar, pull chin above bar"},
				{"name": "Barbell Rows", "sets": 4, "reps": "8-10", "notes": "Keep back straight", "description": "Bend over, row barbell to lower chest"},
				{"name": "Face Pulls", "sets": 3, "reps": "12-15", "notes": "Great for rear delts", "description": "Pull rope to face on cable machine"},
				{"name": "Bicep Curls", "sets": 3, "reps": "10-12", "notes": "No swinging", "description": "Curl dumbbells with controlled motion"},
				{"name": "Hammer Curls", "sets": 3, "reps": "10-12", "notes": "Neutral grip", "description": "Curl with palms facing each other"}
			]
		}
	]
}`

const mockDietPlanJSON = `{
	"dailyCalories": 2200,
	"macros": {
		"protein": 165,
		"carbs": 220,
		"fats": 73
	},
	"meals": {
		"breakfast": {
			"name": "Protein Oatmeal Bowl",
			"calories": 550,
			"protein": 35,
			"carbs": 60,
			"fats": 18,
			"description": "1 cup oats with 1 scoop protein powder, 1 banana, 2 tbsp almond butter, and a handful of berries"
		},
		"lunch": {
			"name": "Grilled Chicken Quinoa Bowl",
			"calories": 650,
			"protein": 50,
			"carbs": 55,
			"fats": 22,
			"description": "200g grilled chicken breast, 1 cup quinoa, mixed greens, cherry tomatoes, cucumber, olive oil dressing"
		},
		"dinner": {
			"name": "Salmon with Sweet Potato",
			"calories": 700,
			"protein": 55,
			"carbs": 50,
			"fats": 28,
			"description": "200g baked salmon fillet, 1 large sweet potato, steamed broccoli and asparagus"
		},
		"snack": {
			"name": "Greek Yogurt Parfait",
			"calories": 300,
			"protein": 25,
			"carbs": 30,
			"fats": 8,
			"description": "1 cup Greek yogurt, honey, mixed nuts, and granola"
		}
	}
}`

const mockAnalysisJSON = `{
	"summary": "You're making great progress! Keep up the consistency.",
	"achievements": [
		"Completed 5 workouts this week",
		"Met your protein goals 4 out of 7 days",
		"Increased squat weight by 5kg"
	],
	"recommendations": [
		"Consider adding an extra rest day for recovery",
		"Try to drink more water throughout the day",
		"Focus on compound movements for efficiency"
	],
	"score": 78
}`

// MockClient answers every completion locally. It keys off the system
// instruction to decide which fixture a request is after.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (c *MockClient) respond(req CompletionRequest) string {
	var systemPrompt, userMessage string
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			systemPrompt = m.Content
		case RoleUser:
			userMessage = m.Content
		}
	}

	switch {
	case strings.Contains(systemPrompt, "nutritionist"):
		return mockDietPlanJSON
	case strings.Contains(systemPrompt, "fitness analyst"):
		return mockAnalysisJSON
	case req.JSONResponse:
		return mockWorkoutPlanJSON
	default:
		return mockChatResponse(userMessage)
	}
}

func mockChatResponse(message string) string {
	if len(message) > 50 {
		message = message[:50]
	}
	return fmt.Sprintf(`Great question! As your AI fitness coach, here are my thoughts:

Based on your question about "%s...", I'd recommend focusing on:

1. **Consistency** - The most important factor in any fitness journey
2. **Progressive Overload** - Gradually increase intensity over time
3. **Recovery** - Don't underestimate the importance of rest days
4. **Nutrition** - Fuel your body properly for your goals

Would you like me to elaborate on any of these points? I'm here to help with workout plans, diet advice, or any fitness-related questions!`, message)
}

func (c *MockClient) Complete(_ context.Context, req CompletionRequest) (string, error) {
	return c.respond(req), nil
}

func (c *MockClient) Stream(_ context.Context, req CompletionRequest, onChunk func(content string) error) error {
	// word by word, simulating provider token chunks
	for _, word := range strings.Split(c.respond(req), " ") {
		if err := onChunk(word + " "); err != nil {
			return err
		}
	}
	return nil
}
