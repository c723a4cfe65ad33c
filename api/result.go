// Package api
// Author: momentics@gmail.com
//
// Completion handle contract.

package api

// Future is the completion handle of a submitted unit of work.
type Future interface {
	// Done is closed once the work has completed, failed or been cancelled.
	Done() <-chan struct{}
	// Err returns the completion error. Valid only after Done is closed.
	Err() error
	// OnComplete registers fn to run exactly once with the completion error.
	// If the future has already completed, fn runs on the caller's goroutine.
	OnComplete(fn func(err error))
}
