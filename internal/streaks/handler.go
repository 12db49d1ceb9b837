package streaks

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

type streaksRepo interface {
	List(ctx context.Context, userID string) ([]Streak, error)
	Increment(ctx context.Context, userID, category string) (*Streak, error)
	Reset(ctx context.Context, userID, category string) (*Streak, error)
}

type StreakResponse struct {
	Success bool    `json:"success"`
	Data    *Streak `json:"data"`
}

type StreaksListResponse struct {
	Success bool     `json:"success"`
	Data    []Streak `json:"data"`
}

type Handler struct {
	repo streaksRepo
}

func NewHandler(repo streaksRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.streaks.list")
	defer span.End()

	userID := middleware.UserIDFromRequest(r)

	streaks, err := handler.repo.List(ctx, userID)
	if err != nil {
		log.Errorf("failed to list streaks for user %s: %s", userID, err)
		pkg.WriteJSONError(w, "failed to get streaks", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(StreaksListResponse{Success: true, Data: streaks})
	if err != nil {
		log.Errorf("failed to marshal streaks: %s", err)
		pkg.WriteJSONError(w, "failed to get streaks", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}

func (handler *Handler) HandleIncrement(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.streaks.increment")
	defer span.End()

	userID := middleware.UserIDFromRequest(r)

	category := mux.Vars(r)["category"]
	if !ValidCategory(category) {
		pkg.WriteJSONError(w, "unknown streak category", http.StatusBadRequest)
		return
	}

	streak, err := handler.repo.Increment(ctx, userID, category)
	if err != nil {
		log.Errorf("failed to increment %s streak for user %s: %s", category, userID, err)
		pkg.WriteJSONError(w, "failed to update streak", http.StatusInternalServerError)
		return
	}

	log.Debugf("streak %s incremented for user %s: current %d", category, userID, streak.CurrentStreak)

	respBytes, err := json.Marshal(StreakResponse{Success: true, Data: streak})
	if err != nil {
		log.Errorf("failed to marshal streak: %s", err)
		pkg.WriteJSONError(w, "failed to update streak", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}

func (handler *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.streaks.reset")
	defer span.End()

	userID := middleware.UserIDFromRequest(r)

	category := mux.Vars(r)["category"]
	if !ValidCategory(category) {
		pkg.WriteJSONError(w, "unknown streak category", http.StatusBadRequest)
		return
	}

	streak, err := handler.repo.Reset(ctx, userID, category)
	if err != nil {
		log.Errorf("failed to reset %s streak for user %s: %s", category, userID, err)
		pkg.WriteJSONError(w, "failed to reset streak", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(StreakResponse{Success: true, Data: streak})
	if err != nil {
		log.Errorf("failed to marshal streak: %s", err)
		pkg.WriteJSONError(w, "failed to reset streak", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}
