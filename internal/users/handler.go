package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/fitbridge/fitbridge/internal/middleware"
	"github.com/fitbridge/fitbridge/internal/telemetry/tracing"
	"github.com/fitbridge/fitbridge/pkg"
)

type usersRepo interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	Update(ctx context.Context, userID string, update ProfileUpdate) (*Profile, error)
}

type ProfileResponse struct {
	Success bool     `json:"success"`
	Data    *Profile `json:"data"`
}

type Handler struct {
	repo usersRepo
}

func NewHandler(repo usersRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.get")
	defer span.End()

	userID := middleware.UserIDFromRequest(r)

	profile, err := handler.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			pkg.WriteJSONError(w, "profile not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get profile for user %s: %s", userID, err)
		pkg.WriteJSONError(w, "failed to get profile", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(ProfileResponse{Success: true, Data: profile})
	if err != nil {
		log.Errorf("failed to marshal profile: %s", err)
		pkg.WriteJSONError(w, "failed to get profile", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.update")
	defer span.End()

	userID := middleware.UserIDFromRequest(r)

	var update ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Errorf("update profile, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if update.Weight != nil && *update.Weight <= 0 {
		pkg.WriteJSONError(w, "weight must be positive", http.StatusBadRequest)
		return
	}
	if update.Height != nil && *update.Height <= 0 {
		pkg.WriteJSONError(w, "height must be positive", http.StatusBadRequest)
		return
	}

	profile, err := handler.repo.Update(ctx, userID, update)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			pkg.WriteJSONError(w, "profile not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update profile for user %s: %s", userID, err)
		pkg.WriteJSONError(w, "failed to update profile", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(ProfileResponse{Success: true, Data: profile})
	if err != nil {
		log.Errorf("failed to marshal profile: %s", err)
		pkg.WriteJSONError(w, "failed to update profile", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}
