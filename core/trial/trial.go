// File: core/trial/trial.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package trial drives the two-increment stress protocol: every trial creates
// a fresh counter, submits two concurrent increments, joins them and validates
// the final value in a continuation of the join. A wrong value is reported and
// the run carries on.
package trial

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/momentics/stresskit/api"
	"github.com/momentics/stresskit/core/concurrency"
)

// IncrementsPerTrial is the number of concurrent increments in one trial.
const IncrementsPerTrial = 2

// Anomaly describes one trial whose counter ended with an unexpected value.
type Anomaly struct {
	Trial    int
	Observed int64
}

// Runner submits trials and tallies their outcomes. A Runner may be used for
// several RunTrials calls; its tallies accumulate.
type Runner struct {
	out       io.Writer
	outMu     sync.Mutex
	log       *slog.Logger
	onAnomaly func(Anomaly)

	// pending counts trials not yet settled; idle is closed whenever it drops to zero.
	pendingMu sync.Mutex
	pending   int
	idle      chan struct{}

	submitted atomic.Int64
	validated atomic.Int64
	anomalies atomic.Int64
	cancelled atomic.Int64
	failed    atomic.Int64
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithOutput sets the writer receiving "Incorrect counter value" lines.
func WithOutput(w io.Writer) RunnerOption {
	return func(r *Runner) { r.out = w }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) { r.log = l }
}

// WithAnomalyHook registers fn to be called for every anomaly. It runs on a
// pool worker and must be safe for concurrent use.
func WithAnomalyHook(fn func(Anomaly)) RunnerOption {
	return func(r *Runner) { r.onAnomaly = fn }
}

// NewRunner creates a runner expecting IncrementsPerTrial per trial.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		out: os.Stdout,
		log: slog.Default(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// RunTrials submits n independent trials to exec without waiting for any of
// them. Validation runs asynchronously once both increments of a trial have
// completed. It returns early only if ctx is done or exec rejects a task.
func (r *Runner) RunTrials(ctx context.Context, n int, exec api.Executor, factory api.CounterFactory) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("trial %d: %w", i, err)
		}
		if err := r.submitTrial(i, exec, factory()); err != nil {
			return fmt.Errorf("trial %d: %w", i, err)
		}
	}
	return nil
}

func (r *Runner) submitTrial(i int, exec api.Executor, c api.Counter) error {
	increment := func(context.Context) error {
		c.Increment()
		return nil
	}

	handles := make([]api.Future, 0, IncrementsPerTrial)
	for k := 0; k < IncrementsPerTrial; k++ {
		f, err := exec.Submit(increment)
		if err != nil {
			return err
		}
		handles = append(handles, f)
	}

	r.submitted.Add(1)
	r.track()
	concurrency.AllOf(handles...).
		Then(func() error {
			r.validate(i, c)
			return nil
		}).
		OnComplete(func(err error) {
			defer r.settle()
			switch {
			case err == nil:
			case errors.Is(err, concurrency.ErrTaskCancelled):
				r.cancelled.Add(1)
			default:
				r.failed.Add(1)
				r.log.Error("trial failed", "trial", i, "err", err)
			}
		})
	return nil
}

func (r *Runner) validate(i int, c api.Counter) {
	r.validated.Add(1)
	v := c.Get()
	if v == IncrementsPerTrial {
		return
	}
	r.anomalies.Add(1)

	r.outMu.Lock()
	fmt.Fprintf(r.out, "Incorrect counter value: %d\n", v)
	r.outMu.Unlock()
	r.log.Debug("incorrect counter value", "trial", i, "observed", v, "expected", IncrementsPerTrial)

	if r.onAnomaly != nil {
		r.onAnomaly(Anomaly{Trial: i, Observed: v})
	}
}

func (r *Runner) track() {
	r.pendingMu.Lock()
	defer r.pendingMu.Unlock()
	if r.pending == 0 {
		r.idle = make(chan struct{})
	}
	r.pending++
}

func (r *Runner) settle() {
	r.pendingMu.Lock()
	defer r.pendingMu.Unlock()
	r.pending--
	if r.pending == 0 {
		close(r.idle)
	}
}

// Wait blocks until every submitted trial has been validated, cancelled or
// has failed, or until ctx is done. An interrupted Wait leaves nothing
// behind; trials stuck on an abandoned pool simply stay pending.
func (r *Runner) Wait(ctx context.Context) error {
	r.pendingMu.Lock()
	if r.pending == 0 {
		r.pendingMu.Unlock()
		return nil
	}
	idle := r.idle
	r.pendingMu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Tally is a snapshot of trial outcomes.
type Tally struct {
	Submitted int64
	Validated int64
	Anomalies int64
	Cancelled int64
	Failed    int64
}

// Tally returns the current counts.
func (r *Runner) Tally() Tally {
	return Tally{
		Submitted: r.submitted.Load(),
		Validated: r.validated.Load(),
		Anomalies: r.anomalies.Load(),
		Cancelled: r.cancelled.Load(),
		Failed:    r.failed.Load(),
	}
}
