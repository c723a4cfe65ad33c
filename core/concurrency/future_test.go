package concurrency

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/momentics/stresskit/api"
)

func TestFuture_CompleteOnce(t *testing.T) {
	f := NewFuture()
	if f.Err() != nil {
		t.Fatal("pending future reported an error")
	}
	if !f.Complete(nil) {
		t.Fatal("first Complete returned false")
	}
	if f.Complete(errors.New("late")) {
		t.Fatal("second Complete returned true")
	}
	if f.Err() != nil {
		t.Fatalf("error overwritten: %v", f.Err())
	}
	select {
	case <-f.Done():
	default:
		t.Fatal("Done not closed")
	}
}

func TestFuture_OnCompleteAfterCompletion(t *testing.T) {
	sentinel := errors.New("boom")
	f := Completed(sentinel)
	var got error
	f.OnComplete(func(err error) { got = err })
	if !errors.Is(got, sentinel) {
		t.Fatalf("callback got %v", got)
	}
}

func TestAllOf_CompletesAfterEveryInput(t *testing.T) {
	a, b := NewFuture(), NewFuture()
	var fired atomic.Int32
	all := AllOf(a, b)
	all.OnComplete(func(error) { fired.Add(1) })

	b.Complete(nil)
	select {
	case <-all.Done():
		t.Fatal("join completed with one input pending")
	default:
	}
	a.Complete(nil)

	if err := all.Wait(context.Background()); err != nil {
		t.Fatalf("join error: %v", err)
	}
	if fired.Load() != 1 {
		t.Fatalf("continuation fired %d times", fired.Load())
	}
}

func TestAllOf_PropagatesError(t *testing.T) {
	sentinel := errors.New("failed")
	all := AllOf(Completed(nil), Completed(sentinel), Completed(nil))
	if !errors.Is(all.Err(), sentinel) {
		t.Fatalf("expected sentinel, got %v", all.Err())
	}
}

func TestAllOf_Empty(t *testing.T) {
	all := AllOf()
	select {
	case <-all.Done():
	default:
		t.Fatal("empty join must complete immediately")
	}
}

func TestFuture_Then(t *testing.T) {
	var ran atomic.Bool
	next := Completed(nil).Then(func() error {
		ran.Store(true)
		return nil
	})
	if !ran.Load() || next.Err() != nil {
		t.Fatalf("continuation not run: ran=%v err=%v", ran.Load(), next.Err())
	}

	ran.Store(false)
	next = Completed(ErrTaskCancelled).Then(func() error {
		ran.Store(true)
		return nil
	})
	if ran.Load() {
		t.Error("continuation ran after failed input")
	}
	if !errors.Is(next.Err(), ErrTaskCancelled) {
		t.Errorf("expected ErrTaskCancelled, got %v", next.Err())
	}

	next = Completed(nil).Then(func() error { panic("validator") })
	if !errors.Is(next.Err(), ErrTaskPanicked) {
		t.Errorf("expected ErrTaskPanicked, got %v", next.Err())
	}
}

func TestFuture_WaitHonoursContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := NewFuture().Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline, got %v", err)
	}
}

func TestFuture_PanickingCallbackIsLogged(t *testing.T) {
	logger, logs := testLogger()
	prev := slog.Default()
	slog.SetDefault(logger)
	t.Cleanup(func() { slog.SetDefault(prev) })

	f := NewFuture()
	var after atomic.Bool
	f.OnComplete(func(error) { panic("broken callback") })
	f.OnComplete(func(error) { after.Store(true) })
	if !f.Complete(nil) {
		t.Fatal("Complete returned false")
	}
	if !after.Load() {
		t.Fatal("callback after the panicking one did not run")
	}
	if out := logs.String(); !strings.Contains(out, "future callback panicked") || !strings.Contains(out, "broken callback") {
		t.Fatalf("panic not logged:\n%s", out)
	}
}

var _ api.Future = NewFuture()
