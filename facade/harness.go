// File: facade/harness.go
// Unified facade for the stresskit demonstrations.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Harness aggregates the independent entry sequences behind one type: the
// counter stress trials, the sequential/parallel prime-count comparison and
// the page fetch collaborator. Entry sequences share no mutable state except
// the control plane they report into, so each can be run and tested alone.

package facade

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/momentics/stresskit/adapters"
	"github.com/momentics/stresskit/api"
	"github.com/momentics/stresskit/core/concurrency"
	"github.com/momentics/stresskit/core/counter"
	"github.com/momentics/stresskit/core/throughput"
	"github.com/momentics/stresskit/core/trial"
	"github.com/momentics/stresskit/internal/fetch"
)

// Config holds parameters immutable per harness.
type Config struct {
	Trials          int           // Trials per counter run
	CounterKind     counter.Kind  // Variant used by Run
	Workers         int           // Pool size for trial runs
	QueueCapacity   int           // Lock-free queue capacity before overflow
	ShutdownTimeout time.Duration // Per-stage escalation timeout
	CPUAffinity     bool          // Pin pool workers to CPUs
	Drain           bool          // Finish every trial before the forced shutdown
	PrimeLimit      int64         // Upper bound for the prime-count comparison
	Certainty       int           // Probable-prime confidence parameter
	Parallelism     int           // Goroutines for the parallel count
	FetchTimeout    time.Duration // Per-request timeout for FetchPage
	Out             io.Writer     // Console lines; nil means stdout
	Logger          *slog.Logger  // nil means slog.Default()
}

// DefaultConfig mirrors the original demonstration: 10,000 trials on four
// workers and a prime count up to 100,000.
func DefaultConfig() *Config {
	return &Config{
		Trials:          10_000,
		CounterKind:     counter.KindAtomic,
		Workers:         4,
		QueueCapacity:   1024,
		ShutdownTimeout: concurrency.DefaultShutdownTimeout,
		CPUAffinity:     false,
		Drain:           true,
		PrimeLimit:      100_000,
		Certainty:       throughput.DefaultCertainty,
		Parallelism:     runtime.GOMAXPROCS(0),
		FetchTimeout:    fetch.DefaultTimeout,
	}
}

// Validate checks the numeric fields.
func (c *Config) Validate() error {
	invalid := func(field string, v any) error {
		return api.NewError(api.ErrCodeInvalidArgument, "invalid harness config").
			WithContext("field", field).
			WithContext("value", v)
	}
	switch {
	case c.Trials < 0:
		return invalid("Trials", c.Trials)
	case c.Workers <= 0:
		return invalid("Workers", c.Workers)
	case c.ShutdownTimeout <= 0:
		return invalid("ShutdownTimeout", c.ShutdownTimeout)
	case c.PrimeLimit < 0:
		return invalid("PrimeLimit", c.PrimeLimit)
	case c.Parallelism < 0:
		return invalid("Parallelism", c.Parallelism)
	}
	if _, err := counter.New(c.CounterKind); err != nil {
		return invalid("CounterKind", c.CounterKind)
	}
	return nil
}

// Harness is the main facade type.
type Harness struct {
	cfg     Config
	control *adapters.ControlAdapter
	fetcher api.Fetcher
	log     *slog.Logger
	out     io.Writer
}

// New validates cfg and publishes it into the control plane.
func New(cfg *Config) (*Harness, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h := &Harness{
		cfg:     *cfg,
		control: adapters.NewControlAdapter(),
		log:     cfg.Logger,
		out:     cfg.Out,
	}
	if h.log == nil {
		h.log = slog.Default()
	}
	if h.out == nil {
		h.out = os.Stdout
	}
	h.fetcher = fetch.New(&http.Client{Timeout: cfg.FetchTimeout}, h.log)

	h.control.SetConfig(map[string]any{
		"trials":              cfg.Trials,
		"counter.kind":        cfg.CounterKind.String(),
		"pool.workers":        cfg.Workers,
		"pool.shutdown_ms":    cfg.ShutdownTimeout.Milliseconds(),
		"pool.cpu_affinity":   cfg.CPUAffinity,
		"throughput.limit":    cfg.PrimeLimit,
		"throughput.parallel": cfg.Parallelism,
	})
	return h, nil
}

// RunCounterTrials runs the stress trials for one counter variant on a
// dedicated pool, tearing the pool down before returning.
func (h *Harness) RunCounterTrials(ctx context.Context, kind counter.Kind) (trial.Summary, error) {
	cfg := trial.Config{
		Trials: h.cfg.Trials,
		Kind:   kind,
		Pool: concurrency.Options{
			Workers:         h.cfg.Workers,
			QueueCapacity:   h.cfg.QueueCapacity,
			ShutdownTimeout: h.cfg.ShutdownTimeout,
			CPUAffinity:     h.cfg.CPUAffinity,
			Logger:          h.log,
		},
		Drain:  h.cfg.Drain,
		Out:    h.out,
		Logger: h.log,
	}
	sum, err := trial.Run(ctx, cfg)

	h.control.AddMetric("trials.runs", 1)
	prefix := "trials." + kind.String() + "."
	h.control.SetMetric(prefix+"validated", sum.Tally.Validated)
	h.control.SetMetric(prefix+"anomalies", sum.Tally.Anomalies)
	h.control.SetMetric(prefix+"cancelled", sum.Tally.Cancelled)
	h.control.SetMetric(prefix+"pool_state", sum.State.String())
	h.control.SetMetric(prefix+"elapsed_ms", sum.Elapsed.Milliseconds())
	return sum, err
}

// ComparePrimes times the sequential and the parallel probable-prime count up to n.
func (h *Harness) ComparePrimes(ctx context.Context, n int64) (throughput.Comparison, error) {
	res, err := throughput.Run(ctx, throughput.Config{
		Limit:       n,
		Certainty:   h.cfg.Certainty,
		Parallelism: h.cfg.Parallelism,
		Out:         h.out,
		Logger:      h.log,
	})
	if err != nil {
		return res, err
	}
	h.control.SetMetric("throughput.count", res.Count)
	h.control.SetMetric("throughput.sequential_ms", res.Sequential.Milliseconds())
	h.control.SetMetric("throughput.parallel_ms", res.Parallel.Milliseconds())
	h.control.SetMetric("throughput.speedup", res.Speedup())
	return res, nil
}

// FetchPage retrieves url through the fetch collaborator.
func (h *Harness) FetchPage(ctx context.Context, url string) (string, error) {
	body, err := h.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	h.control.SetMetric("fetch.bytes", len(body))
	return body, nil
}

// Run executes the original demonstration order: the throughput comparison
// first, then the counter trials for the configured variant.
func (h *Harness) Run(ctx context.Context) error {
	if _, err := h.ComparePrimes(ctx, h.cfg.PrimeLimit); err != nil {
		return fmt.Errorf("throughput: %w", err)
	}
	if _, err := h.RunCounterTrials(ctx, h.cfg.CounterKind); err != nil {
		return fmt.Errorf("trials: %w", err)
	}
	return nil
}

// GetControl returns the control plane for metrics and debug probes.
func (h *Harness) GetControl() api.Control {
	return h.control
}

// Stats returns metrics and debug probe output.
func (h *Harness) Stats() map[string]any {
	return h.control.Stats()
}
