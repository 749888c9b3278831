// Package auth validates bearer tokens against the identity provider
// and guards relay routes. The provider does the real verification; this
// package only classifies its answers.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Rejection reasons. Callers map these onto HTTP statuses.
var (
	ErrMissingToken        = errors.New("missing bearer token")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

// Verifier resolves a bearer token to a user identifier.
type Verifier interface {
	Verify(ctx context.Context, token string) (userID string, err error)
}

// SupabaseVerifier validates tokens against a Supabase-compatible
// identity endpoint (GET /auth/v1/user).
type SupabaseVerifier struct {
	baseURL    string
	serviceKey string
	client     *http.Client
}

// NewSupabaseVerifier creates a verifier for the given project URL and
// service-role key.
func NewSupabaseVerifier(baseURL, serviceKey string) *SupabaseVerifier {
	return &SupabaseVerifier{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type supabaseUser struct {
	ID string `json:"id"`
}

func (v *SupabaseVerifier) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrMissingToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return "", fmt.Errorf("creating verification request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.serviceKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var user supabaseUser
		if err := json.NewDecoder(resp.Body).Decode(&user); err != nil || user.ID == "" {
			return "", fmt.Errorf("%w: malformed user payload", ErrInvalidToken)
		}
		return user.ID, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", ErrInvalidToken
	default:
		return "", fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}
}

// BearerToken extracts the token from an Authorization header, empty
// when absent or not a Bearer scheme.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
