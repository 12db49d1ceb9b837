package users_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitbridge/fitbridge/internal/middleware"
	"github.com/fitbridge/fitbridge/internal/users"
)

func newProfileRouter(handler *users.Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Identity())
	r.HandleFunc("/api/user/profile", handler.HandleGet).Methods("GET")
	r.HandleFunc("/api/user/profile", handler.HandleUpdate).Methods("PUT")
	return r
}

func TestHandler_HandleGet_defaultProfile(t *testing.T) {
	router := newProfileRouter(users.NewHandler(users.NewMemoryRepo()))

	req := httptest.NewRequest("GET", "/api/user/profile", nil)
	req.Header.Set("Authorization", "Bearer user1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp users.ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Equal(t, users.DefaultProfile("user1"), resp.Data)
}

func TestHandler_HandleUpdate(t *testing.T) {
	router := newProfileRouter(users.NewHandler(users.NewMemoryRepo()))

	name := "Ana"
	weight := 62.5
	reqBytes, err := json.Marshal(users.ProfileUpdate{Name: &name, Weight: &weight})
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", "/api/user/profile", bytes.NewReader(reqBytes))
	req.Header.Set("Authorization", "Bearer user1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp users.ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data)
	assert.Equal(t, "Ana", resp.Data.Name)
	assert.Equal(t, 62.5, resp.Data.Weight)
	// untouched fields keep their defaults
	assert.Equal(t, users.DefaultProfile("user1").Height, resp.Data.Height)
}

func TestHandler_HandleUpdate_validation(t *testing.T) {
	router := newProfileRouter(users.NewHandler(users.NewMemoryRepo()))

	badWeight := -5.0
	reqBytes, err := json.Marshal(users.ProfileUpdate{Weight: &badWeight})
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", "/api/user/profile", bytes.NewReader(reqBytes))
	req.Header.Set("Authorization", "Bearer user1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
