package diet

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

type dietService interface {
	Create(ctx context.Context, meal *Meal) (*Meal, error)
	List(ctx context.Context, userID string, params ListParams) ([]Meal, error)
	TodayMeals(ctx context.Context, userID string) ([]Meal, Totals, error)
	Get(ctx context.Context, userID, id string) (*Meal, error)
	Delete(ctx context.Context, userID, id string) error
	WindowedStats(ctx context.Context, userID string, days int) (*Stats, error)
}

type MealResponse struct {
	Success bool  `json:"success"`
	Data    *Meal `json:"data"`
}

type MealsListResponse struct {
	Success bool   `json:"success"`
	Data    []Meal `json:"data"`
}

type TodayMealsResponse struct {
	Success bool   `json:"success"`
	Data    []Meal `json:"data"`
	Totals  Totals `json:"totals"`
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
	service dietService
	instr   *instrumentation.Instrumentation
}

func NewHandler(service dietService, instr *instrumentation.Instrumentation) *Handler {
	return &Handler{
		service: service,
		instr:   instr,
	}
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diet.create")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		pkg.WriteJSONError(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var meal Meal
	if err := json.NewDecoder(r.Body).Decode(&meal); err != nil {
		log.Errorf("create meal log, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if meal.MealName == "" {
		pkg.WriteJSONError(w, "meal name is required", http.StatusBadRequest)
		return
	}
	if meal.Calories < 0 {
		pkg.WriteJSONError(w, "calories must not be negative", http.StatusBadRequest)
		return
	}
	if meal.Protein < 0 || meal.Carbs < 0 || meal.Fats < 0 {
		pkg.WriteJSONError(w, "macros must not be negative", http.StatusBadRequest)
		return
	}
	if meal.LogDate != "" && !dates.Valid(meal.LogDate) {
		pkg.WriteJSONError(w, "invalid log date", http.StatusBadRequest)
		return
	}

	meal.UserID = middleware.UserIDFromRequest(r)

	created, err := handler.service.Create(ctx, &meal)
	if err != nil {
		log.Errorf("failed to create meal log for user %s: %s", meal.UserID, err)
		pkg.WriteJSONError(w, "failed to log meal", http.StatusInternalServerError)
		return
	}

	handler.instr.CounterMealsLogged.Inc()
	log.Debugf("meal logged: [%s] %s (%d kcal) on %s", created.ID, created.MealName, created.Calories, created.LogDate)

	respBytes, err := json.Marshal(MealResponse{Success: true, Data: created})
	if err != nil {
		log.Errorf("failed to marshal meal log: %s", err)
		pkg.WriteJSONError(w, "failed to log meal", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diet.list")
	defer span.End()

	userID := middleware.UserIDFromRequest(r)

	params := ListParams{
		Limit:      20,
		DateFilter: r.URL.Query().Get("date"),
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			pkg.WriteJSONError(w, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		params.Limit = limit
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			pkg.WriteJSONError(w, "invalid offset parameter", http.StatusBadRequest)
			return
		}
		params.Offset = offset
	}
	if params.DateFilter != "" && !dates.Valid(params.DateFilter) {
		pkg.WriteJSONError(w, "invalid date parameter", http.StatusBadRequest)
		return
	}

	meals, err := handler.service.List(ctx, userID, params)
	if err != nil {
		log.Errorf("failed to list meal logs for user %s: %s", userID, err)
		pkg.WriteJSONError(w, "failed to get meal logs", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(MealsListResponse{Success: true, Data: meals})
	if err != nil {
		log.Errorf("failed to marshal meal logs: %s", err)
		pkg.WriteJSONError(w, "failed to get meal logs", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}

func (handler *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diet.today")
	defer span.End()

	userID := middleware.UserIDFromRequest(r)

	meals, totals, err := handler.service.TodayMeals(ctx, userID)
	if err != nil {
		log.Errorf("failed to get today meals for user %s: %s", userID, err)
		pkg.WriteJSONError(w, "failed to get today meals", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(TodayMealsResponse{Success: true, Data: meals, Totals: totals})
	if err != nil {
		log.Errorf("failed to marshal today meals: %s", err)
		pkg.WriteJSONError(w, "failed to get today meals", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diet.get")
	defer span.End()

	userID := middleware.UserIDFromRequest(r)

	id := mux.Vars(r)["id"]
	if id == "" {
		pkg.WriteJSONError(w, "id is required", http.StatusBadRequest)
		return
	}

	meal, err := handler.service.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrMealNotFound) {
			pkg.WriteJSONError(w, "meal log not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get meal log %s: %s", id, err)
		pkg.WriteJSONError(w, "failed to get meal log", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(MealResponse{Success: true, Data: meal})
	if err != nil {
		log.Errorf("failed to marshal meal log: %s", err)
		pkg.WriteJSONError(w, "failed to get meal log", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diet.delete")
	defer span.End()

	userID := middleware.UserIDFromRequest(r)

	id := mux.Vars(r)["id"]
	if id == "" {
		pkg.WriteJSONError(w, "id is required", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, userID, id); err != nil {
		log.Errorf("failed to delete meal log %s: %s", id, err)
		pkg.WriteJSONError(w, "failed to delete meal log", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(DeleteResponse{Success: true, DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		pkg.WriteJSONError(w, "failed to delete meal log", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diet.stats")
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
		log.Errorf("failed to get diet stats for user %s: %s", userID, err)
		pkg.WriteJSONError(w, "failed to get diet stats", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(StatsResponse{Success: true, Data: stats})
	if err != nil {
		log.Errorf("failed to marshal diet stats: %s", err)
		pkg.WriteJSONError(w, "failed to get diet stats", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}
