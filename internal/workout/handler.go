package workout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fitbridge/fitbridge/internal/dates"
	"github.com/fitbridge/fitbridge/internal/instrumentation"
	"github.com/fitbridge/fitbridge/internal/middleware"
	"github.com/fitbridge/fitbridge/internal/telemetry/tracing"
	"github.com/fitbridge/fitbridge/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workout_test

type workoutService interface {
	Create(ctx context.Context, workoutLog *Log) (*Log, error)
	List(ctx context.Context, userID string, params ListParams) ([]Log, error)
	Get(ctx context.Context, userID, id string) (*Log, error)
	Delete(ctx context.Context, userID, id string) error
	WindowedStats(ctx context.Context, userID string, days int) (*Stats, error)
}

type LogResponse struct {
	Success bool `json:"success"`
	Data    *Log `json:"data"`
}

type LogsListResponse struct {
	Success bool  `json:"success"`
	Data    []Log `json:"data"`
}

type DeleteResponse struct {
	Success   bool   `json:"success"`
	DeletedID string `json:"deleted_id"`
}

type StatsResponse struct {
	Success bool   `json:"success"`
	Data    *Stats `json:"data"`
}

type Handler struct {
	service workoutService
	instr   *instrumentation.Instrumentation
}

func NewHandler(service workoutService, instr *instrumentation.Instrumentation) *Handler {
	return &Handler{
		service: service,
		instr:   instr,
	}
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.create")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		pkg.WriteJSONError(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var workoutLog Log
	if err := json.NewDecoder(r.Body).Decode(&workoutLog); err != nil {
		log.Errorf("create workout log, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if workoutLog.Title == "" {
		pkg.WriteJSONError(w, "title is required", http.StatusBadRequest)
		return
	}
	if workoutLog.DurationMinutes < 0 {
		pkg.WriteJSONError(w, "duration must not be negative", http.StatusBadRequest)
		return
	}
	if workoutLog.CaloriesBurned != nil && *workoutLog.CaloriesBurned < 0 {
		pkg.WriteJSONError(w, "calories burned must not be negative", http.StatusBadRequest)
		return
	}
	if workoutLog.WorkoutDate != "" && !dates.Valid(workoutLog.WorkoutDate) {
		pkg.WriteJSONError(w, "invalid workout date", http.StatusBadRequest)
		return
	}

	workoutLog.UserID = middleware.UserIDFromRequest(r)

	created, err := handler.service.Create(ctx, &workoutLog)
	if err != nil {
		log.Errorf("failed to create workout log for user %s: %s", workoutLog.UserID, err)
		pkg.WriteJSONError(w, "failed to log workout", http.StatusInternalServerError)
		return
	}

	handler.instr.CounterWorkoutsLogged.Inc()
	log.Debugf("workout logged: [%s] %s on %s", created.ID, created.Title, created.WorkoutDate)

	respBytes, err := json.Marshal(LogResponse{Success: true, Data: created})
	if err != nil {
		log.Errorf("failed to marshal workout log: %s", err)
		pkg.WriteJSONError(w, "failed to log workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.list")
	defer span.End()

	userID := middleware.UserIDFromRequest(r)

	params, err := listParamsFromQuery(r)
	if err != nil {
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	logs, err := handler.service.List(ctx, userID, params)
	if err != nil {
		log.Errorf("failed to list workout logs for user %s: %s", userID, err)
		pkg.WriteJSONError(w, "failed to get workout logs", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(LogsListResponse{Success: true, Data: logs})
	if err != nil {
		log.Errorf("failed to marshal workout logs: %s", err)
		pkg.WriteJSONError(w, "failed to get workout logs", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}

func listParamsFromQuery(r *http.Request) (ListParams, error) {
	params := ListParams{
		Limit:      20,
		DateFilter: r.URL.Query().Get("date"),
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return ListParams{}, errors.New("invalid limit parameter")
		}
		params.Limit = limit
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return ListParams{}, errors.New("invalid offset parameter")
		}
		params.Offset = offset
	}
	if params.DateFilter != "" && !dates.Valid(params.DateFilter) {
		return ListParams{}, errors.New("invalid date parameter")
	}
	return params, nil
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.get")
	defer span.End()

	userID := middleware.UserIDFromRequest(r)

	id := mux.Vars(r)["id"]
	if id == "" {
		pkg.WriteJSONError(w, "id is required", http.StatusBadRequest)
		return
	}

	workoutLog, err := handler.service.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			pkg.WriteJSONError(w, "workout log not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get workout log %s: %s", id, err)
		pkg.WriteJSONError(w, "failed to get workout log", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(LogResponse{Success: true, Data: workoutLog})
	if err != nil {
		log.Errorf("failed to marshal workout log: %s", err)
		pkg.WriteJSONError(w, "failed to get workout log", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.delete")
	defer span.End()

	userID := middleware.UserIDFromRequest(r)

	id := mux.Vars(r)["id"]
	if id == "" {
		pkg.WriteJSONError(w, "id is required", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, userID, id); err != nil {
		log.Errorf("failed to delete workout log %s: %s", id, err)
		pkg.WriteJSONError(w, "failed to delete workout log", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(DeleteResponse{Success: true, DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		pkg.WriteJSONError(w, "failed to delete workout log", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.stats")
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

	stats, err := handler.service.WindowedStats(ctx, userID, days)
	if err != nil {
		log.Errorf("failed to get workout stats for user %s: %s", userID, err)
		pkg.WriteJSONError(w, "failed to get workout stats", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(StatsResponse{Success: true, Data: stats})
	if err != nil {
		log.Errorf("failed to marshal workout stats: %s", err)
		pkg.WriteJSONError(w, "failed to get workout stats", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}
