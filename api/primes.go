// Package api
// Author: momentics <momentics@gmail.com>
//
// Collaborator contracts consumed by the demonstration core.

package api

import "context"

// ProbablePrimer reports whether x is probably prime. The probability of a
// false positive is bounded by 2^-certainty. Implementations are pure.
type ProbablePrimer interface {
	ProbablyPrime(x int64, certainty int) bool
}

// Fetcher retrieves a resource and returns its body as text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}
