package explain

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/exply-app/exply/internal/llm"
	"github.com/exply-app/exply/internal/prompt"
)

// DirectClient builds prompts locally and calls the generative API with
// a caller-held key.
type DirectClient struct {
	provider llm.Provider
}

// NewDirectClient creates a direct-mode client over the given provider.
func NewDirectClient(provider llm.Provider) *DirectClient {
	return &DirectClient{provider: provider}
}

func (c *DirectClient) Explain(ctx context.Context, req Request) (string, error) {
	full := prompt.Render(req.Context, req.FollowUpQuestion, req.Mode, req.Language)

	result, err := c.provider.Generate(ctx, llm.GenerateRequest{Prompt: full})
	if err != nil {
		return "", classifyProviderError(err)
	}

	if result.Truncated {
		log.Warn().Msg("explanation was truncated by the output token limit")
	}

	if strings.TrimSpace(result.Text) == "" {
		return FallbackText, nil
	}
	return result.Text, nil
}

// classifyProviderError maps a provider failure onto the client error
// taxonomy.
func classifyProviderError(err error) *Error {
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
			return classified(KindAuth, msgAuth, err)
		case apiErr.StatusCode == http.StatusBadRequest:
			message := msgValidation
			if apiErr.Message != "" {
				message = apiErr.Message
			}
			return classified(KindValidation, message, err)
		case apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500:
			return classified(KindUpstream, msgUpstream, err)
		default:
			return classified(KindUpstream, msgUpstream, err)
		}
	}
	if strings.Contains(err.Error(), "invalid response format") {
		return classified(KindProtocol, msgProtocol, err)
	}
	return classified(KindNetwork, msgNetwork, err)
}
