package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

type contextKey struct{}

// UserID returns the authenticated user id attached by Middleware, empty
// when the request was not authenticated.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

func withUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func writeError(w http.ResponseWriter, status int, errName, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": errName, "message": message})
}

// Middleware requires and verifies a bearer token on every request,
// attaching the resolved user id to the request context for metering.
func Middleware(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized",
					"Authentication required. Please log in to your account and try again.")
				return
			}

			userID, err := verifier.Verify(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrMissingToken):
					log.Warn().Err(err).Msg("auth: token verification failed")
					writeError(w, http.StatusUnauthorized, "Unauthorized",
						"Invalid or expired session. Please log in again.")
				default:
					log.Error().Err(err).Msg("auth: identity provider error")
					writeError(w, http.StatusServiceUnavailable, "Service Unavailable",
						"Authentication service error. Please try again later.")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
		})
	}
}

// RejectAll refuses every request. Wired when the deployment policy is
// fail-closed and no identity provider is configured.
func RejectAll() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusServiceUnavailable, "Service Unavailable",
				"Authentication service is not configured. Please contact support.")
		})
	}
}
