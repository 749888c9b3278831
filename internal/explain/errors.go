package explain

import "fmt"

// Kind classifies a failed explanation attempt. Every failure leaving
// this package carries exactly one kind; callers render the message and
// never inspect raw transport errors.
type Kind string

const (
	// KindAuth: missing or rejected credential. Retry requires a fresh
	// login.
	KindAuth Kind = "auth"
	// KindValidation: the request itself was malformed.
	KindValidation Kind = "validation"
	// KindUpstream: the service failed transiently (rate limit, 5xx).
	KindUpstream Kind = "upstream"
	// KindNetwork: no HTTP response at all.
	KindNetwork Kind = "network"
	// KindProtocol: a response arrived but not in the expected shape.
	KindProtocol Kind = "protocol"
)

// Error is a classified explanation failure with a short human-readable
// message. The wrapped cause is kept for logs, never shown to users.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Default user-facing messages per kind.
const (
	msgAuth       = "Authentication required. Please log in to your account and try again."
	msgValidation = "The request was invalid."
	msgUpstream   = "The explanation service is temporarily unavailable. Please try again later."
	msgNetwork    = "Could not reach the explanation service. Check your connection and try again."
	msgProtocol   = "Invalid response format from the explanation service."
)

func classified(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}
