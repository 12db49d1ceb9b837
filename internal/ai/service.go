package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fitbridge/fitbridge/internal/users"
)

const workoutPlanSystemPrompt = `You are an elite fitness coach. Create serious, effective, and practical workout plans.
Your output MUST be valid JSON matching this exact structure:
{
    "title": "Plan name",
    "duration": "e.g., 4 weeks",
    "difficulty": "Beginner/Intermediate/Advanced",
    "schedule": [
        {
            "dayTitle": "Day 1: Chest & Triceps",
            "exercises": [
                {
                    "name": "Exercise name",
                    "sets": 3,
                    "reps": "8-12",
                    "notes": "Form tips or variations",
                    "description": "Brief description of the exercise"
                }
            ]
        }
    ]
}`

const dietPlanSystemPrompt = `You are a professional nutritionist. Create balanced, healthy meal plans with accurate macro calculations.
Your output MUST be valid JSON matching this exact structure:
{
    "dailyCalories": 2000,
    "macros": {
        "protein": 150,
        "carbs": 200,
        "fats": 65
    },
    "meals": {
        "breakfast": {
            "name": "Meal name",
            "calories": 500,
            "protein": 30,
            "carbs": 50,
            "fats": 15,
            "description": "Detailed description with portions"
        },
        "lunch": { ... },
        "dinner": { ... },
        "snack": { ... }
    }
}`

const chatSystemPrompt = `You are an expert AI fitness coach. You provide helpful, accurate, and personalized advice on:
- Workout routines and exercise techniques
- Nutrition and diet planning
- Recovery and injury prevention
- Motivation and goal setting

Be conversational, supportive, and informative. Keep responses concise but thorough.
If you don't know something, admit it rather than making up information.`

const analysisSystemPrompt = `You are a fitness analyst. Analyze user progress data and provide insights.
Return JSON with: summary (string), achievements (array), recommendations (array), and score (0-100).`

// Service builds the prompts, runs them through the configured provider
// client and normalizes what comes back.
type Service struct {
	client   Client
	provider string
	model    string
	ready    bool
}

// NewService keys the provider string to decide readiness: mock is
// always ready, real providers need their API key.
func NewService(client Client, provider, model, apiKey string) *Service {
	return &Service{
		client:   client,
		provider: provider,
		model:    model,
		ready:    provider == ProviderMock || apiKey != "",
	}
}

func (s *Service) Ready() bool {
	return s.ready
}

func (s *Service) Provider() string {
	return s.provider
}

func (s *Service) Model() string {
	return s.model
}

func profileContext(profile *users.Profile, defaultGoal string) string {
	if profile == nil {
		return ""
	}
	return fmt.Sprintf(`
User Profile:
- Weight: %s kg
- Height: %s cm
- Goal: %s
- Fitness Level: %s
`,
		orNotSpecified(profile.Weight),
		orNotSpecified(profile.Height),
		orDefault(profile.Goal, defaultGoal),
		orDefault(profile.FitnessLevel, "Beginner"),
	)
}

func orNotSpecified(v float64) string {
	if v == 0 {
		return "Not specified"
	}
	return fmt.Sprintf("%g", v)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func (s *Service) GenerateWorkoutPlan(
	ctx context.Context, description string, profile *users.Profile,
) (map[string]any, error) {
	userPrompt := fmt.Sprintf(`%s
Create a detailed workout plan based on these requirements: %s

Structure the plan into days if appropriate for the goal/duration.
The plan MUST contain real, executable physical exercises.
Return ONLY valid JSON, no additional text.`,
		profileContext(profile, "General fitness"), description,
	)

	content, err := s.client.Complete(ctx, CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: workoutPlanSystemPrompt},
			{Role: RoleUser, Content: userPrompt},
		},
		Temperature:  0.7,
		MaxTokens:    2000,
		JSONResponse: true,
	})
	if err != nil {
		return nil, err
	}

	plan, err := parsePlan(content)
	if err != nil {
		return nil, err
	}
	ensureSchedule(plan)
	return plan, nil
}

func (s *Service) GenerateDietPlan(
	ctx context.Context, description string, profile *users.Profile,
) (map[string]any, error) {
	userPrompt := fmt.Sprintf(`%s
Generate a daily diet plan for: %s

Ensure all meals are practical and include accurate nutritional information.
Return ONLY valid JSON, no additional text.`,
		profileContext(profile, "General health"), description,
	)

	content, err := s.client.Complete(ctx, CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: dietPlanSystemPrompt},
			{Role: RoleUser, Content: userPrompt},
		},
		Temperature:  0.7,
		MaxTokens:    1500,
		JSONResponse: true,
	})
	if err != nil {
		return nil, err
	}

	return parsePlan(content)
}

// parsePlan tolerates providers wrapping the JSON in fenced code blocks
// and returning a top-level list instead of an object.
func parsePlan(content string) (map[string]any, error) {
	content = stripJSONFence(content)

	var parsed any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, &InvalidPlanError{Snippet: snippet(content)}
	}

	switch plan := parsed.(type) {
	case map[string]any:
		return plan, nil
	case []any:
		return map[string]any{
			"title":    "AI Generated Plan",
			"schedule": plan,
		}, nil
	default:
		return nil, &InvalidPlanError{Snippet: snippet(content)}
	}
}

// ensureSchedule guarantees workout plans carry a schedule array, a bare
// exercises list gets wrapped into a single day.
func ensureSchedule(plan map[string]any) {
	if _, ok := plan["schedule"].([]any); ok {
		return
	}
	if exercises, ok := plan["exercises"].([]any); ok {
		plan["schedule"] = []any{
			map[string]any{
				"dayTitle":  "Day 1",
				"exercises": exercises,
			},
		}
		return
	}
	plan["schedule"] = []any{}
}

func stripJSONFence(content string) string {
	if idx := strings.Index(content, "```json"); idx != -1 {
		content = content[idx+len("```json"):]
		if end := strings.Index(content, "```"); end != -1 {
			content = content[:end]
		}
		return strings.TrimSpace(content)
	}
	if idx := strings.Index(content, "```"); idx != -1 {
		content = content[idx+len("```"):]
		if end := strings.Index(content, "```"); end != -1 {
			content = content[:end]
		}
		return strings.TrimSpace(content)
	}
	return strings.TrimSpace(content)
}

func snippet(content string) string {
	if len(content) > 100 {
		return content[:100]
	}
	return content
}

func (s *Service) chatMessages(message string, history []Message, profile *users.Profile) []Message {
	systemPrompt := chatSystemPrompt
	if profile != nil {
		systemPrompt += fmt.Sprintf(`

User Context:
- Name: %s
- Goal: %s
- Fitness Level: %s
`,
			orDefault(profile.Name, "User"),
			orDefault(profile.Goal, "General fitness"),
			orDefault(profile.FitnessLevel, "Beginner"),
		)
	}

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: RoleSystem, Content: systemPrompt})
	for _, m := range history {
		role := RoleUser
		if m.Role == RoleAssistant {
			role = RoleAssistant
		}
		messages = append(messages, Message{Role: role, Content: m.Content})
	}
	return append(messages, Message{Role: RoleUser, Content: message})
}

func (s *Service) Chat(
	ctx context.Context, message string, history []Message, profile *users.Profile,
) (string, error) {
	return s.client.Complete(ctx, CompletionRequest{
		Messages:    s.chatMessages(message, history, profile),
		Temperature: 0.8,
		MaxTokens:   1000,
	})
}

func (s *Service) ChatStream(
	ctx context.Context, message string, history []Message, profile *users.Profile,
	onChunk func(content string) error,
) error {
	return s.client.Stream(ctx, CompletionRequest{
		Messages:    s.chatMessages(message, history, profile),
		Temperature: 0.8,
		MaxTokens:   1000,
	}, onChunk)
}

func (s *Service) AnalyzeProgress(
	ctx context.Context, userData map[string]any,
) (map[string]any, error) {
	userDataJSON, err := json.MarshalIndent(userData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal progress data: %w", err)
	}

	content, err := s.client.Complete(ctx, CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: analysisSystemPrompt},
			{Role: RoleUser, Content: fmt.Sprintf(`Analyze this fitness progress data and provide insights:
%s

Return insights in JSON format.`, userDataJSON)},
		},
		Temperature:  0.7,
		MaxTokens:    800,
		JSONResponse: true,
	})
	if err != nil {
		return nil, err
	}

	return parsePlan(content)
}
