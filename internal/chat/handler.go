// Package chat exposes the AI fitness coach conversation endpoints,
// including the SSE streaming variant.
package chat

import (
	"context"
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/fitbridge/fitbridge/internal/ai"
	"github.com/fitbridge/fitbridge/internal/instrumentation"
	"github.com/fitbridge/fitbridge/internal/telemetry/tracing"
	"github.com/fitbridge/fitbridge/internal/users"
	"github.com/fitbridge/fitbridge/pkg"
)

// Suggestions offered to fresh conversations.
var suggestions = []string{
	"What's the best workout routine for building muscle?",
	"How many calories should I eat to lose weight?",
	"Can you explain proper squat form?",
	"What should I eat before a workout?",
	"How can I improve my sleep for better recovery?",
	"What are the benefits of HIIT training?",
	"How do I track my macros effectively?",
	"What's a good stretching routine?",
}

type coachService interface {
	Chat(ctx context.Context, message string, history []ai.Message, profile *users.Profile) (string, error)
	ChatStream(ctx context.Context, message string, history []ai.Message, profile *users.Profile, onChunk func(content string) error) error
}

type Request struct {
	Message     string         `json:"message"`
	History     []ai.Message   `json:"history"`
	UserContext *users.Profile `json:"user_context"`
}

type SendResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}

type SuggestionsResponse struct {
	Success     bool     `json:"success"`
	Suggestions []string `json:"suggestions"`
}

type Handler struct {
	service coachService
	instr   *instrumentation.Instrumentation
}

func NewHandler(service coachService, instr *instrumentation.Instrumentation) *Handler {
	return &Handler{
		service: service,
		instr:   instr,
	}
}

func (handler *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.chat.send")
	defer span.End()

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("chat send, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		pkg.WriteJSONError(w, "message is required", http.StatusBadRequest)
		return
	}

	response, err := handler.service.Chat(ctx, req.Message, req.History, req.UserContext)
	if err != nil {
		log.Errorf("chat send failed: %s", err)
		pkg.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	handler.instr.CounterChatMessages.Inc()

	respBytes, err := json.Marshal(SendResponse{Success: true, Response: response})
	if err != nil {
		log.Errorf("failed to marshal chat response: %s", err)
		pkg.WriteJSONError(w, "failed to send message", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}

// HandleStream replies with Server-Sent Events: one data event per
// content chunk, a terminal {"done": true} event, and an {"error": ...}
// event if the provider fails mid-stream.
func (handler *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.chat.stream")
	defer span.End()

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("chat stream, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		pkg.WriteJSONError(w, "message is required", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		pkg.WriteJSONError(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", pkg.ContentType.EventStream)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	err := handler.service.ChatStream(ctx, req.Message, req.History, req.UserContext,
		func(content string) error {
			if err := writeSSEEvent(w, map[string]any{"content": content}); err != nil {
				return err
			}
			flusher.Flush()
			return nil
		},
	)
	if err != nil {
		log.Errorf("chat stream failed: %s", err)
		_ = writeSSEEvent(w, map[string]any{"error": err.Error()})
		flusher.Flush()
		return
	}

	handler.instr.CounterChatMessages.Inc()

	_ = writeSSEEvent(w, map[string]any{"done": true})
	flusher.Flush()
}

func writeSSEEvent(w http.ResponseWriter, payload map[string]any) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte("data: ")); err != nil {
		return err
	}
	if _, err := w.Write(payloadBytes); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n\n"))
	return err
}

func (handler *Handler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.chat.suggestions")
	defer span.End()

	respBytes, err := json.Marshal(SuggestionsResponse{Success: true, Suggestions: suggestions})
	if err != nil {
		log.Errorf("failed to marshal chat suggestions: %s", err)
		pkg.WriteJSONError(w, "failed to get suggestions", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}
