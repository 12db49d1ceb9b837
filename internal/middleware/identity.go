package middleware

import (
	"context"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

type userIDContextKey struct{}

// UserIDFromRequest returns the user ID extracted by Identity, or empty
// if the request carried no Authorization header.
func UserIDFromRequest(r *http.Request) string {
	userID, _ := r.Context().Value(userIDContextKey{}).(string)
	return userID
}

// Identity extracts the user identifier from the Authorization header.
// The bearer token is accepted verbatim as the user ID, no verification
// is done on it. Paths in optionalPaths are served even without a token,
// everything else under /api requires one.
func Identity(optionalPathPrefixes ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				return
			}

			userID := strings.TrimSpace(r.Header.Get("Authorization"))
			userID = strings.TrimPrefix(userID, "Bearer ")

			if userID == "" && requiresIdentity(r.URL.Path, optionalPathPrefixes) {
				log.Tracef("[missing user token] unauthorized => %s", r.URL.Path)
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDContextKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func requiresIdentity(path string, optionalPathPrefixes []string) bool {
	if !strings.HasPrefix(path, "/api/") {
		return false
	}
	for _, prefix := range optionalPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}
