package repository

import "time"

// Politeness supplies the anti-blocking behavior of feed access: rotated
// identity headers and randomized delays. It is an injected strategy so
// tests can substitute deterministic values.
type Politeness interface {
	// IdentityHeaders returns one header set, picked pseudo-randomly from
	// a fixed pool per call.
	IdentityHeaders() map[string]string
	// RetryBackoff returns the sleep before the next retry of a failed
	// page request.
	RetryBackoff() time.Duration
	// PageDelay returns the sleep between consecutive page fetches.
	PageDelay() time.Duration
}
