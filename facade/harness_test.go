package facade

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/momentics/stresskit/api"
	"github.com/momentics/stresskit/core/counter"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Trials = 1000
	cfg.PrimeLimit = 1000
	cfg.Out = io.Discard
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	bad := []func(*Config){
		func(c *Config) { c.Workers = 0 },
		func(c *Config) { c.Trials = -1 },
		func(c *Config) { c.ShutdownTimeout = 0 },
		func(c *Config) { c.PrimeLimit = -5 },
		func(c *Config) { c.CounterKind = counter.Kind(77) },
	}
	for i, mutate := range bad {
		cfg := DefaultConfig()
		mutate(cfg)
		err := cfg.Validate()
		if !errors.Is(err, api.ErrInvalidArgument) {
			t.Errorf("case %d: expected ErrInvalidArgument, got %v", i, err)
		}
		if _, err := New(cfg); err == nil {
			t.Errorf("case %d: New accepted invalid config", i)
		}
	}
}

func TestHarness_PublishesConfig(t *testing.T) {
	h, err := New(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	cfg := h.GetControl().GetConfig()
	if cfg["counter.kind"] != "atomic" || cfg["pool.workers"] != 4 {
		t.Fatalf("unexpected published config: %v", cfg)
	}
}

func TestHarness_RunCounterTrials(t *testing.T) {
	h, err := New(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	for _, kind := range []counter.Kind{counter.KindLocked, counter.KindAtomic} {
		sum, err := h.RunCounterTrials(context.Background(), kind)
		if err != nil {
			t.Fatalf("%v: %v", kind, err)
		}
		if sum.Tally.Anomalies != 0 || sum.Tally.Validated != 1000 {
			t.Errorf("%v: unexpected tally %+v", kind, sum.Tally)
		}
	}
	stats := h.Stats()
	if stats["trials.runs"] != int64(2) {
		t.Errorf("trials.runs = %v, want 2", stats["trials.runs"])
	}
	if stats["trials.atomic.anomalies"] != int64(0) {
		t.Errorf("metrics not recorded: %v", stats)
	}
	if stats["trials.locked.pool_state"] != "terminated" {
		t.Errorf("pool state metric = %v", stats["trials.locked.pool_state"])
	}
}

func TestHarness_ComparePrimes(t *testing.T) {
	h, err := New(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	res, err := h.ComparePrimes(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if res.Count != 4 {
		t.Fatalf("count = %d, want 4", res.Count)
	}
	if h.Stats()["throughput.count"] != int64(4) {
		t.Errorf("metric missing: %v", h.Stats())
	}
}

func TestHarness_Run(t *testing.T) {
	h, err := New(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	stats := h.Stats()
	if stats["throughput.count"] != int64(168) {
		t.Errorf("throughput.count = %v", stats["throughput.count"])
	}
	if _, ok := stats["trials.atomic.validated"]; !ok {
		t.Errorf("trial metrics missing: %v", stats)
	}
}

func TestHarness_FetchPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "page body")
	}))
	defer srv.Close()

	h, err := New(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	body, err := h.FetchPage(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(body, "page body") {
		t.Fatalf("body = %q", body)
	}
	if h.Stats()["fetch.bytes"] != len("page body") {
		t.Errorf("fetch.bytes = %v", h.Stats()["fetch.bytes"])
	}
}
