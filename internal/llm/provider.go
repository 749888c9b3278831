// Package llm talks to generative-language providers. A provider is an
// opaque text-completion service: one prompt string in, text out, plus a
// truncation indicator and token counts for metering.
package llm

import (
	"context"
	"fmt"
)

// Default generation parameters used when a request leaves them zero.
const (
	DefaultTemperature     = 0.7
	DefaultMaxOutputTokens = 2048
)

// GenerateRequest carries a single prompt and generation parameters.
type GenerateRequest struct {
	Prompt          string
	Temperature     float64
	MaxOutputTokens int
}

// GenerateResult is the provider's completion output.
type GenerateResult struct {
	Text         string
	Truncated    bool // generation stopped at the output token limit
	InputTokens  int
	OutputTokens int
}

// Provider is a generative-language backend.
type Provider interface {
	// Generate sends a completion request and returns the result text.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
	// Name returns the provider name.
	Name() string
	// Configured reports whether the provider holds a credential.
	Configured() bool
}

// APIError is a failure reported by the upstream provider with an HTTP
// status, preserved so callers can map it onto their own taxonomy
// (authentication, rate limit, transient).
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("provider error (%s): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("provider error (status %d): %s", e.StatusCode, e.Message)
}

// normalize fills in default generation parameters.
func normalize(req GenerateRequest) GenerateRequest {
	if req.Temperature == 0 {
		req.Temperature = DefaultTemperature
	}
	if req.MaxOutputTokens == 0 {
		req.MaxOutputTokens = DefaultMaxOutputTokens
	}
	return req
}
