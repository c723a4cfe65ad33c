// File: core/trial/run.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package trial

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/momentics/stresskit/adapters"
	"github.com/momentics/stresskit/api"
	"github.com/momentics/stresskit/core/concurrency"
	"github.com/momentics/stresskit/core/counter"
)

// Config describes one trial entry sequence.
type Config struct {
	Trials int
	Kind   counter.Kind
	Pool   concurrency.Options

	// Factory overrides Kind when set.
	Factory api.CounterFactory

	// Drain waits for every trial to finish before the forced shutdown, so
	// every trial is validated and ShutdownNow finds nothing left to cancel.
	// When false, submission is followed directly by the shutdown and trials
	// still queued at that point are cancelled.
	Drain bool

	Out       io.Writer    // anomaly lines; nil means stdout
	Logger    *slog.Logger // nil means slog.Default()
	OnAnomaly func(Anomaly)
}

// DefaultConfig runs 10,000 trials of the atomic counter on four workers.
func DefaultConfig() Config {
	return Config{
		Trials: 10_000,
		Kind:   counter.KindAtomic,
		Pool:   concurrency.DefaultOptions(),
		Drain:  true,
	}
}

// Summary is the outcome of Run.
type Summary struct {
	Kind    counter.Kind // meaningful only when Custom is false
	Custom  bool         // trials ran on an injected Factory
	Trials  int
	Tally   Tally
	State   api.PoolState
	Elapsed time.Duration
}

// Run creates a pool, submits cfg.Trials trials and tears the pool down with
// the escalating shutdown. Anomalies never make Run fail; only a rejected
// submission or an interrupted wait does.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	if cfg.Trials < 0 {
		return Summary{}, fmt.Errorf("trial: negative trial count %d: %w", cfg.Trials, api.ErrInvalidArgument)
	}
	factory := cfg.Factory
	if factory == nil {
		f, err := counter.NewFactory(cfg.Kind)
		if err != nil {
			return Summary{}, err
		}
		factory = f
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pool.Logger == nil {
		cfg.Pool.Logger = logger
	}

	pool, err := concurrency.NewPool(cfg.Pool)
	if err != nil {
		return Summary{}, err
	}

	opts := []RunnerOption{WithLogger(logger)}
	if cfg.Out != nil {
		opts = append(opts, WithOutput(cfg.Out))
	}
	if cfg.OnAnomaly != nil {
		opts = append(opts, WithAnomalyHook(cfg.OnAnomaly))
	}
	r := NewRunner(opts...)

	start := time.Now()
	runErr := r.RunTrials(ctx, cfg.Trials, adapters.NewExecutorAdapter(pool), factory)
	if runErr == nil && cfg.Drain {
		runErr = r.Wait(ctx)
	}
	state, shutErr := pool.Shutdown(ctx)

	sum := Summary{
		Kind:    cfg.Kind,
		Custom:  cfg.Factory != nil,
		Trials:  cfg.Trials,
		Tally:   r.Tally(),
		State:   state,
		Elapsed: time.Since(start),
	}
	logSummary(logger, sum)
	return sum, errors.Join(runErr, shutErr)
}

func logSummary(l *slog.Logger, s Summary) {
	kind := s.Kind.String()
	if s.Custom {
		kind = "custom"
	}
	attrs := []any{
		"kind", kind,
		"trials", s.Trials,
		"validated", s.Tally.Validated,
		"anomalies", s.Tally.Anomalies,
		"cancelled", s.Tally.Cancelled,
		"pool", s.State.String(),
		"elapsed", s.Elapsed,
	}
	if !s.Custom && s.Kind.Synchronized() && s.Tally.Anomalies > 0 {
		l.Error("synchronized counter lost updates", attrs...)
		return
	}
	l.Info("trials finished", attrs...)
}
