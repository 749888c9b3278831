package explain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/exply-app/exply/internal/creds"
	"github.com/exply-app/exply/internal/extract"
)

// Envelope is the relay request wire format.
type Envelope struct {
	Text             string                    `json:"text"`
	Mode             string                    `json:"mode"`
	Context          *extract.SelectionContext `json:"context"`
	TargetLanguage   string                    `json:"target_language"`
	FollowUpQuestion string                    `json:"followUpQuestion,omitempty"`
}

type relayResult struct {
	Result *string `json:"result"`
}

type relayError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RelayClient sends structured requests to the relay service, which
// builds the prompt and holds the upstream key. A creds.Source supplies
// the optional bearer token; on a 401 the cached token is invalidated so
// the next attempt re-resolves credentials.
type RelayClient struct {
	endpoint string
	source   creds.Source
	client   *http.Client
}

// NewRelayClient creates a relay-mode client. source may be nil for an
// unauthenticated relay.
func NewRelayClient(endpoint string, source creds.Source) *RelayClient {
	return &RelayClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		source:   source,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *RelayClient) Explain(ctx context.Context, req Request) (string, error) {
	sc := req.Context
	env := Envelope{
		Text:             sc.HighlightedText,
		Mode:             string(req.Mode),
		Context:          &sc,
		TargetLanguage:   req.Language,
		FollowUpQuestion: req.FollowUpQuestion,
	}

	body, err := json.Marshal(env)
	if err != nil {
		return "", classified(KindValidation, msgValidation, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/explain", bytes.NewReader(body))
	if err != nil {
		return "", classified(KindValidation, msgValidation, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	if c.source != nil {
		token, err := c.source.Get(ctx)
		if err == nil && token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return "", classified(KindNetwork, msgNetwork, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", classified(KindNetwork, msgNetwork, err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", c.classifyStatus(httpResp.StatusCode, respBody)
	}

	var result relayResult
	if err := json.Unmarshal(respBody, &result); err != nil || result.Result == nil {
		return "", classified(KindProtocol, msgProtocol, err)
	}
	if strings.TrimSpace(*result.Result) == "" {
		return FallbackText, nil
	}
	return *result.Result, nil
}

func (c *RelayClient) classifyStatus(status int, body []byte) *Error {
	var relayErr relayError
	_ = json.Unmarshal(body, &relayErr)
	cause := fmt.Errorf("relay returned status %d: %s", status, relayErr.Message)

	switch {
	case status == http.StatusUnauthorized:
		if c.source != nil {
			c.source.Invalidate()
		}
		return classified(KindAuth, msgAuth, cause)
	case status == http.StatusBadRequest:
		message := msgValidation
		if relayErr.Message != "" {
			message = relayErr.Message
		}
		return classified(KindValidation, message, cause)
	case status == http.StatusTooManyRequests || status >= 500:
		return classified(KindUpstream, msgUpstream, cause)
	default:
		return classified(KindUpstream, msgUpstream, cause)
	}
}
