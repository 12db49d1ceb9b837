package ai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fitbridge/fitbridge/internal/telemetry/tracing"
)

// OpenAIClient speaks the OpenAI chat completions wire protocol. The
// deepseek provider uses the exact same protocol behind a different
// base URL and model, so this one client covers both.
type OpenAIClient struct {
	httpClient *http.Client
	baseURL    string // https://api.openai.com/v1
	apiKey     string
	model      string
}

func NewOpenAIClient(httpClient *http.Client, baseURL, apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}
}

type completionsRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
	Stream         bool            `json:"stream,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type completionsResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type completionsStreamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

func (c *OpenAIClient) newRequest(ctx context.Context, req CompletionRequest, stream bool) (*http.Request, error) {
	body := completionsRequest{
		Model:       c.model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Stream:      stream,
	}
	if req.JSONResponse {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal completions request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		c.baseURL+"/chat/completions",
		bytes.NewReader(bodyBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("create completions request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	return httpReq, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (content string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "aiClient.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	httpReq, err := c.newRequest(ctx, req, false)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("completions call: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read completions response: %w", err)
	}

	var completions completionsResponse
	if err := json.Unmarshal(respBytes, &completions); err != nil {
		return "", fmt.Errorf("unmarshal completions response [status %d]: %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		if completions.Error != nil {
			return "", fmt.Errorf("completions call failed [status %d]: %s", resp.StatusCode, completions.Error.Message)
		}
		return "", fmt.Errorf("completions call failed [status %d]", resp.StatusCode)
	}
	if len(completions.Choices) == 0 {
		return "", fmt.Errorf("completions response carries no choices")
	}

	return completions.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) Stream(ctx context.Context, req CompletionRequest, onChunk func(content string) error) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "aiClient.stream")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	httpReq, err := c.newRequest(ctx, req, true)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("completions stream call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("completions stream call failed [status %d]: %s", resp.StatusCode, respBytes)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" || data == "[DONE]" {
			continue
		}

		var chunk completionsStreamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return fmt.Errorf("unmarshal stream chunk: %w", err)
		}
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		if err := onChunk(chunk.Choices[0].Delta.Content); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read completions stream: %w", err)
	}
	return nil
}
