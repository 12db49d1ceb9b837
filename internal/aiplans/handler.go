package aiplans

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fitbridge/fitbridge/internal/middleware"
	"github.com/fitbridge/fitbridge/internal/telemetry/tracing"
	"github.com/fitbridge/fitbridge/pkg"
)

type plansRepo interface {
	Save(ctx context.Context, plan *Plan) (*Plan, error)
	ListActive(ctx context.Context, userID string) ([]Plan, error)
	Deactivate(ctx context.Context, userID, id string) error
}

type PlanResponse struct {
	Success bool  `json:"success"`
	Data    *Plan `json:"data"`
}

type PlansListResponse struct {
	Success bool   `json:"success"`
	Data    []Plan `json:"data"`
}

type DeactivateResponse struct {
	Success       bool   `json:"success"`
	DeactivatedID string `json:"deactivated_id"`
}

type Handler struct {
	repo plansRepo
}

func NewHandler(repo plansRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.aiplans.save")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		pkg.WriteJSONError(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var plan Plan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		log.Errorf("save plan, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if !ValidPlanType(plan.PlanType) {
		pkg.WriteJSONError(w, "plan type must be workout or diet", http.StatusBadRequest)
		return
	}
	if plan.Title == "" {
		pkg.WriteJSONError(w, "title is required", http.StatusBadRequest)
		return
	}
	if len(plan.PlanData) == 0 {
		pkg.WriteJSONError(w, "plan data is required", http.StatusBadRequest)
		return
	}

	plan.UserID = middleware.UserIDFromRequest(r)

	saved, err := handler.repo.Save(ctx, &plan)
	if err != nil {
		log.Errorf("failed to save plan for user %s: %s", plan.UserID, err)
		pkg.WriteJSONError(w, "failed to save plan", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(PlanResponse{Success: true, Data: saved})
	if err != nil {
		log.Errorf("failed to marshal plan: %s", err)
		pkg.WriteJSONError(w, "failed to save plan", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.aiplans.list")
	defer span.End()

	userID := middleware.UserIDFromRequest(r)

	plans, err := handler.repo.ListActive(ctx, userID)
	if err != nil {
		log.Errorf("failed to list plans for user %s: %s", userID, err)
		pkg.WriteJSONError(w, "failed to get plans", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(PlansListResponse{Success: true, Data: plans})
	if err != nil {
		log.Errorf("failed to marshal plans: %s", err)
		pkg.WriteJSONError(w, "failed to get plans", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}

func (handler *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.aiplans.deactivate")
	defer span.End()

	userID := middleware.UserIDFromRequest(r)

	id := mux.Vars(r)["id"]
	if id == "" {
		pkg.WriteJSONError(w, "id is required", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Deactivate(ctx, userID, id); err != nil {
		log.Errorf("failed to deactivate plan %s: %s", id, err)
		pkg.WriteJSONError(w, "failed to deactivate plan", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(DeactivateResponse{Success: true, DeactivatedID: id})
	if err != nil {
		log.Errorf("failed to marshal deactivate response: %s", err)
		pkg.WriteJSONError(w, "failed to deactivate plan", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}
