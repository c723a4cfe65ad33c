// File: core/throughput/comparator.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package throughput compares a sequential and a data-parallel run of the
// same CPU-bound workload: counting probable primes in [2, n].
package throughput

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/momentics/stresskit/api"
)

// ErrCountMismatch reports that the two runs disagreed on the count.
var ErrCountMismatch = errors.New("sequential and parallel counts differ")

// RangeStart is the first integer considered.
const RangeStart = 2

// Config controls the comparison.
type Config struct {
	Limit       int64              // upper bound n, inclusive
	Certainty   int                // probable-prime confidence parameter
	Parallelism int                // goroutines for the parallel run; 0 means GOMAXPROCS
	Primer      api.ProbablePrimer // nil means BigPrimer
	Out         io.Writer          // timing lines; nil means stdout
	Logger      *slog.Logger       // nil means slog.Default()
}

// DefaultConfig returns the n = 100,000 workload.
func DefaultConfig() Config {
	return Config{
		Limit:       100_000,
		Certainty:   DefaultCertainty,
		Parallelism: runtime.GOMAXPROCS(0),
	}
}

// Comparison holds both measurements.
type Comparison struct {
	Limit      int64
	Count      int64
	Sequential time.Duration
	Parallel   time.Duration
}

// Speedup returns Sequential / Parallel, or 0 if the parallel run took no measurable time.
func (c Comparison) Speedup() float64 {
	if c.Parallel <= 0 {
		return 0
	}
	return float64(c.Sequential) / float64(c.Parallel)
}

// Comparator runs the workload twice and times each run.
type Comparator struct {
	cfg Config
	out io.Writer
	log *slog.Logger
	now func() time.Time
}

// NewComparator applies defaults to cfg.
func NewComparator(cfg Config) *Comparator {
	if cfg.Primer == nil {
		cfg.Primer = BigPrimer{}
	}
	c := &Comparator{cfg: cfg, out: cfg.Out, log: cfg.Logger, now: time.Now}
	if c.out == nil {
		c.out = os.Stdout
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c
}

// Compare counts probable primes in [2, n] sequentially, then in parallel.
// Timing is informational; only a count mismatch or cancellation is an error.
func (c *Comparator) Compare(ctx context.Context, n int64) (Comparison, error) {
	res := Comparison{Limit: n}

	start := c.now()
	seq, err := CountSequential(ctx, c.cfg.Primer, RangeStart, n, c.cfg.Certainty)
	if err != nil {
		return res, fmt.Errorf("sequential run: %w", err)
	}
	res.Sequential = c.now().Sub(start)
	fmt.Fprintf(c.out, "No Parallel: %dms\n", res.Sequential.Milliseconds())

	start = c.now()
	par, err := CountParallel(ctx, c.cfg.Primer, RangeStart, n, c.cfg.Certainty, c.cfg.Parallelism)
	if err != nil {
		return res, fmt.Errorf("parallel run: %w", err)
	}
	res.Parallel = c.now().Sub(start)
	fmt.Fprintf(c.out, "Parallel: %dms\n", res.Parallel.Milliseconds())

	if seq != par {
		return res, fmt.Errorf("%w: n=%d sequential=%d parallel=%d", ErrCountMismatch, n, seq, par)
	}
	res.Count = seq

	c.log.Info("throughput comparison",
		"n", n,
		"count", res.Count,
		"sequential", res.Sequential,
		"parallel", res.Parallel,
		"speedup", fmt.Sprintf("%.2fx", res.Speedup()))
	return res, nil
}

// Run executes a single comparison for cfg.Limit.
func Run(ctx context.Context, cfg Config) (Comparison, error) {
	return NewComparator(cfg).Compare(ctx, cfg.Limit)
}
