// Package api
// Author: momentics
//
// Executor contract for parallel task dispatch with completion handles.

package api

import "context"

// Task is a unit of work run by an Executor. The context is cancelled when
// the executor is forcibly shut down; long-running tasks should observe it.
type Task func(ctx context.Context) error

// Executor abstracts a bounded pool of workers.
type Executor interface {
	// Submit schedules task for execution and returns immediately.
	Submit(task Task) (Future, error)

	// NumWorkers returns the fixed number of worker routines.
	NumWorkers() int

	GracefulShutdown
}
