// File: core/concurrency/future.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Future is the completion handle returned by Pool.Submit. AllOf joins a
// fixed set of futures, Then chains a continuation that runs on whichever
// goroutine completes the source future.

package concurrency

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/momentics/stresskit/api"
)

var _ api.Future = (*Future)(nil)

// Future completes exactly once.
type Future struct {
	mu        sync.Mutex
	done      chan struct{}
	completed bool
	err       error
	callbacks []func(error)
}

// NewFuture returns an incomplete future.
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Completed returns a future that has already completed with err.
func Completed(err error) *Future {
	f := NewFuture()
	f.Complete(err)
	return f
}

// Complete resolves the future and runs registered callbacks on the calling
// goroutine. It reports false if the future was already complete.
func (f *Future) Complete(err error) bool {
	f.mu.Lock()
	if f.completed {
		f.mu.Unlock()
		return false
	}
	f.completed = true
	f.err = err
	cbs := f.callbacks
	f.callbacks = nil
	close(f.done)
	f.mu.Unlock()

	for _, cb := range cbs {
		invoke(cb, err)
	}
	return true
}

// Done is closed on completion.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Err returns the completion error, nil while still pending.
func (f *Future) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// OnComplete registers fn. If f is already complete fn runs immediately.
func (f *Future) OnComplete(fn func(err error)) {
	f.mu.Lock()
	if f.completed {
		err := f.err
		f.mu.Unlock()
		invoke(fn, err)
		return
	}
	f.callbacks = append(f.callbacks, fn)
	f.mu.Unlock()
}

// Wait blocks until completion or until ctx is done.
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Then returns a future completed by fn once f succeeds. If f fails, fn is
// skipped and the returned future carries f's error.
func (f *Future) Then(fn func() error) *Future {
	next := NewFuture()
	f.OnComplete(func(err error) {
		if err != nil {
			next.Complete(err)
			return
		}
		next.Complete(runGuarded(fn))
	})
	return next
}

// AllOf returns a future that completes once every input has completed,
// regardless of completion order. Its error is the first input error observed.
func AllOf(futures ...api.Future) *Future {
	if len(futures) == 0 {
		return Completed(nil)
	}
	all := NewFuture()

	var (
		remaining atomic.Int32
		firstErr  atomic.Pointer[error]
	)
	remaining.Store(int32(len(futures)))
	for _, in := range futures {
		in.OnComplete(func(err error) {
			if err != nil {
				firstErr.CompareAndSwap(nil, &err)
			}
			if remaining.Add(-1) == 0 {
				var out error
				if p := firstErr.Load(); p != nil {
					out = *p
				}
				all.Complete(out)
			}
		})
	}
	return all
}

func runGuarded(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()
	return fn()
}

// invoke runs a completion callback. A panicking callback is logged and does
// not stop the remaining callbacks.
func invoke(cb func(error), err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Default().Error("future callback panicked", "panic", r, "err", err)
		}
	}()
	cb(err)
}
