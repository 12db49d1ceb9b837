package dailylog

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/fitbridge/fitbridge/internal/dates"
	"github.com/fitbridge/fitbridge/internal/middleware"
	"github.com/fitbridge/fitbridge/internal/telemetry/tracing"
	"github.com/fitbridge/fitbridge/pkg"
)

type dailyLogRepo interface {
	Apply(ctx context.Context, userID, logDate string, deltas Deltas) (*Entry, error)
	List(ctx context.Context, userID string, days int) ([]Entry, error)
}

type ApplyRequest struct {
	LogDate          string `json:"log_date"`
	CaloriesConsumed int    `json:"calories_consumed"`
	CaloriesBurned   int    `json:"calories_burned"`
	Steps            int    `json:"steps"`
	WorkoutCompleted *bool  `json:"workout_completed"`
}

type EntryResponse struct {
	Success bool   `json:"success"`
	Data    *Entry `json:"data"`
}

type ListResponse struct {
	Success bool    `json:"success"`
	Data    []Entry `json:"data"`
}

type Handler struct {
	repo dailyLogRepo
}

func NewHandler(repo dailyLogRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleApply(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.apply")
	defer span.End()

	userID := middleware.UserIDFromRequest(r)

	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("apply daily log, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.LogDate == "" {
		req.LogDate = dates.Today()
	}
	if !dates.Valid(req.LogDate) {
		pkg.WriteJSONError(w, "invalid log date", http.StatusBadRequest)
		return
	}

	entry, err := handler.repo.Apply(ctx, userID, req.LogDate, Deltas{
		CaloriesConsumed: req.CaloriesConsumed,
		CaloriesBurned:   req.CaloriesBurned,
		Steps:            req.Steps,
		WorkoutCompleted: req.WorkoutCompleted,
	})
	if err != nil {
		log.Errorf("failed to apply daily log for user %s [%s]: %s", userID, req.LogDate, err)
		pkg.WriteJSONError(w, "failed to update daily log", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(EntryResponse{Success: true, Data: entry})
	if err != nil {
		log.Errorf("failed to marshal daily log entry: %s", err)
		pkg.WriteJSONError(w, "failed to update daily log", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.list")
	defer span.End()

	userID := middleware.UserIDFromRequest(r)

	days := 7
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 1 {
			pkg.WriteJSONError(w, "invalid days parameter", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	entries, err := handler.repo.List(ctx, userID, days)
	if err != nil {
		log.Errorf("failed to list daily logs for user %s: %s", userID, err)
		pkg.WriteJSONError(w, "failed to get daily logs", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(ListResponse{Success: true, Data: entries})
	if err != nil {
		log.Errorf("failed to marshal daily logs: %s", err)
		pkg.WriteJSONError(w, "failed to get daily logs", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}
