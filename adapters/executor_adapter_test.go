package adapters_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/momentics/stresskit/adapters"
	"github.com/momentics/stresskit/core/concurrency"
)

func TestExecutorAdapter_SubmitAndShutdown(t *testing.T) {
	pool, err := concurrency.NewPool(concurrency.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	ex := adapters.NewExecutorAdapter(pool)
	if ex.NumWorkers() != 4 {
		t.Fatalf("NumWorkers = %d", ex.NumWorkers())
	}

	f, err := ex.Submit(func(context.Context) error { return nil })
	if err != nil {
		t.Fatal(err)
	}
	select {
	case <-f.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("task did not complete")
	}

	if err := ex.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if _, err := ex.Submit(func(context.Context) error { return nil }); !errors.Is(err, concurrency.ErrPoolClosed) {
		t.Fatalf("expected ErrPoolClosed, got %v", err)
	}
}
