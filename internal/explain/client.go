// Package explain fetches AI explanations for a selection context. The
// two Client implementations correspond to the two deployment shapes:
// DirectClient holds the generative-API key itself, RelayClient sends
// structured requests to a relay that holds the key server-side. A
// deployment uses one or the other, chosen once at startup.
package explain

import (
	"context"

	"github.com/exply-app/exply/internal/extract"
	"github.com/exply-app/exply/internal/prompt"
)

// FallbackText is returned when the provider produces empty output.
const FallbackText = "No explanation provided."

// Request describes one explanation to fetch.
type Request struct {
	Context          extract.SelectionContext
	Mode             prompt.Mode
	Language         string
	FollowUpQuestion string
}

// Client produces explanation text for a request, or a classified
// *Error.
type Client interface {
	Explain(ctx context.Context, req Request) (string, error)
}
