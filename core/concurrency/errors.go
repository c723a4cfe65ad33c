// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Error definitions for concurrency module.

package concurrency

import "errors"

var (
	// ErrPoolClosed indicates the pool no longer accepts tasks
	ErrPoolClosed = errors.New("pool is closed")

	// ErrTaskCancelled indicates a queued task was drained by a forced shutdown before it started
	ErrTaskCancelled = errors.New("task cancelled before start")

	// ErrTaskPanicked wraps the value recovered from a panicking task or continuation
	ErrTaskPanicked = errors.New("task panicked")

	// ErrInvalidWorkerCount indicates invalid worker count configuration
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)
