package ai

import (
	"context"
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/fitbridge/fitbridge/internal/instrumentation"
	"github.com/fitbridge/fitbridge/internal/telemetry/tracing"
	"github.com/fitbridge/fitbridge/internal/users"
	"github.com/fitbridge/fitbridge/pkg"
)

type planGenerator interface {
	GenerateWorkoutPlan(ctx context.Context, description string, profile *users.Profile) (map[string]any, error)
	GenerateDietPlan(ctx context.Context, description string, profile *users.Profile) (map[string]any, error)
	AnalyzeProgress(ctx context.Context, userData map[string]any) (map[string]any, error)
	Ready() bool
	Provider() string
	Model() string
}

type GeneratePlanRequest struct {
	UserDescription string         `json:"user_description"`
	PlanType        string         `json:"plan_type"` // workout or diet
	UserProfile     *users.Profile `json:"user_profile"`
}

// GeneratePlanResponse is always served with status 200: generation
// failures ride in the envelope, not in the HTTP status.
type GeneratePlanResponse struct {
	Success bool           `json:"success"`
	Plan    map[string]any `json:"plan,omitempty"`
	Error   string         `json:"error,omitempty"`
}

type StatusResponse struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Ready    bool   `json:"ready"`
}

type AnalyzeRequest struct {
	UserData map[string]any `json:"user_data"`
}

type AnalyzeResponse struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
}

type Handler struct {
	service planGenerator
	instr   *instrumentation.Instrumentation
}

func NewHandler(service planGenerator, instr *instrumentation.Instrumentation) *Handler {
	return &Handler{
		service: service,
		instr:   instr,
	}
}

func (handler *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.ai.generate")
	defer span.End()

	var req GeneratePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("generate plan, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.UserDescription == "" {
		pkg.WriteJSONError(w, "user description is required", http.StatusBadRequest)
		return
	}

	var (
		plan map[string]any
		err  error
	)
	switch req.PlanType {
	case "workout":
		plan, err = handler.service.GenerateWorkoutPlan(ctx, req.UserDescription, req.UserProfile)
	case "diet":
		plan, err = handler.service.GenerateDietPlan(ctx, req.UserDescription, req.UserProfile)
	default:
		writeGenerateResponse(w, GeneratePlanResponse{
			Success: false,
			Error:   "Invalid plan_type. Must be 'workout' or 'diet'",
		})
		return
	}
	if err != nil {
		log.Errorf("failed to generate %s plan: %s", req.PlanType, err)
		writeGenerateResponse(w, GeneratePlanResponse{Success: false, Error: err.Error()})
		return
	}

	handler.instr.CounterPlansGenerated.WithLabelValues(req.PlanType).Inc()

	writeGenerateResponse(w, GeneratePlanResponse{Success: true, Plan: plan})
}

func writeGenerateResponse(w http.ResponseWriter, resp GeneratePlanResponse) {
	respBytes, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal generate plan response: %s", err)
		pkg.WriteJSONError(w, "failed to generate plan", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}

func (handler *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.ai.status")
	defer span.End()

	respBytes, err := json.Marshal(StatusResponse{
		Provider: handler.service.Provider(),
		Model:    handler.service.Model(),
		Ready:    handler.service.Ready(),
	})
	if err != nil {
		log.Errorf("failed to marshal ai status: %s", err)
		pkg.WriteJSONError(w, "failed to get ai status", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}

func (handler *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.ai.analyze")
	defer span.End()

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("analyze progress, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	insights, err := handler.service.AnalyzeProgress(ctx, req.UserData)
	if err != nil {
		log.Errorf("failed to analyze progress: %s", err)
		pkg.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(AnalyzeResponse{Success: true, Data: insights})
	if err != nil {
		log.Errorf("failed to marshal analysis: %s", err)
		pkg.WriteJSONError(w, "failed to analyze progress", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}
