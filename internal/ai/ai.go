// Package ai talks to an OpenAI compatible chat completion provider and
// shapes its output into plans, coach chat replies and progress insights.
package ai

import "fmt"

// Providers the service can run with. Mock serves canned fixtures and
// is a first-class deployment mode, not a test stub.
const (
	ProviderOpenAI   = "openai"
	ProviderDeepseek = "deepseek"
	ProviderMock     = "mock"
)

// Message is one role-tagged chat turn sent to the provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// CompletionRequest is what a single provider round trip needs.
type CompletionRequest struct {
	Messages     []Message
	Temperature  float64
	MaxTokens    int
	JSONResponse bool
}

// InvalidPlanError means the provider answered but the answer could not
// be parsed into a plan. Snippet carries the start of the raw response.
type InvalidPlanError struct {
	Snippet string
}

func (e *InvalidPlanError) Error() string {
	return fmt.Sprintf("ai returned invalid plan JSON: %s", e.Snippet)
}
