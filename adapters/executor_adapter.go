// File: adapters/executor_adapter.go
// Package adapters provides glue between core implementations and api contracts.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ExecutorAdapter implements api.Executor by delegating to a concurrency.Pool.

package adapters

import (
	"context"

	"github.com/momentics/stresskit/api"
	"github.com/momentics/stresskit/core/concurrency"
)

// ExecutorAdapter wraps a concurrency.Pool to satisfy the api.Executor contract.
type ExecutorAdapter struct {
	pool *concurrency.Pool
}

var _ api.Executor = (*ExecutorAdapter)(nil)

// NewExecutorAdapter wraps an existing pool. The adapter does not own the pool
// exclusively; callers may still use the pool directly.
func NewExecutorAdapter(p *concurrency.Pool) *ExecutorAdapter {
	return &ExecutorAdapter{pool: p}
}

// Submit dispatches a task and returns its completion handle.
func (ea *ExecutorAdapter) Submit(task api.Task) (api.Future, error) {
	f, err := ea.pool.Submit(task)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// NumWorkers returns the fixed worker count.
func (ea *ExecutorAdapter) NumWorkers() int {
	return ea.pool.NumWorkers()
}

// Shutdown runs the pool's escalating shutdown. An abandoned pool is not an error.
func (ea *ExecutorAdapter) Shutdown(ctx context.Context) error {
	_, err := ea.pool.Shutdown(ctx)
	return err
}
