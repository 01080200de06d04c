// Package ratelimit bounds contact form submission volume per client.
//
// The limiter is a fixed-window counter: the first request from a key
// opens a window, subsequent requests inside that window increment a
// counter, and the key is denied once the counter reaches the limit.
// The window is never slid; it expires as a whole and the next request
// opens a fresh one.
package ratelimit

import "context"

// Limiter decides whether a request from the given client key may proceed.
// Implementations must be safe for concurrent use.
type Limiter interface {
	// Allow records one attempt for key and reports whether it is allowed
	// under the current window. Remaining is the number of further attempts
	// the key has left in this window (0 when denied).
	Allow(ctx context.Context, key string) (Decision, error)
}

// Decision is the outcome of a Limiter.Allow call.
type Decision struct {
	Allowed   bool
	Remaining int
}
