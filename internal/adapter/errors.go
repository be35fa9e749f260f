package adapter

import "errors"

// Upstream failure kinds. Every error returned by the engine and classifier
// clients for a failed round trip wraps exactly one of them.
var (
	// ErrUnavailable: the collaborator could not be reached, timed out or
	// answered with a 5xx, 408 or 429 status.
	ErrUnavailable = errors.New("upstream unavailable")
	// ErrRejected: the collaborator refused the request itself (4xx).
	ErrRejected = errors.New("upstream rejected request")
	// ErrUnauthorized: the collaborator answered 401 or 403.
	ErrUnauthorized = errors.New("upstream refused credentials")
)

var (
	ErrEmptyAddress      = errors.New("empty address")
	ErrNoClassification  = errors.New("classifier returned no labels")
	ErrUnexpectedPayload = errors.New("unexpected response payload")
)
