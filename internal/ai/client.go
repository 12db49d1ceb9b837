package ai

import "context"

var _ Client = (*OpenAIClient)(nil)
var _ Client = (*MockClient)(nil)

// Client is one chat completion provider. Complete returns the full
// response content, Stream hands content chunks to onChunk as they
// arrive and stops on the first onChunk error.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Stream(ctx context.Context, req CompletionRequest, onChunk func(content string) error) error
}
