package counter

import (
	"errors"
	"sync"
	"testing"

	"github.com/momentics/stresskit/api"
)

func TestCounter_FreshIsZero(t *testing.T) {
	for _, k := range Kinds() {
		c, err := New(k)
		if err != nil {
			t.Fatalf("New(%v): %v", k, err)
		}
		if got := c.Get(); got != 0 {
			t.Errorf("%v: fresh counter = %d, want 0", k, got)
		}
	}
}

func TestCounter_SequentialIncrements(t *testing.T) {
	for _, k := range Kinds() {
		c, _ := New(k)
		for i := 0; i < 100; i++ {
			c.Increment()
		}
		if got := c.Get(); got != 100 {
			t.Errorf("%v: after 100 increments = %d", k, got)
		}
	}
}

func TestCounter_SynchronizedUnderContention(t *testing.T) {
	const goroutines = 16
	const perGoroutine = 5000

	for _, k := range []Kind{KindLocked, KindAtomic} {
		c, _ := New(k)
		var wg sync.WaitGroup
		for g := 0; g < goroutines; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < perGoroutine; i++ {
					c.Increment()
				}
			}()
		}
		wg.Wait()
		if got, want := c.Get(), int64(goroutines*perGoroutine); got != want {
			t.Errorf("%v: lost updates, got %d want %d", k, got, want)
		}
	}
}

func TestCounter_UnsynchronizedNeverExceeds(t *testing.T) {
	c := &Unsynchronized{}
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				c.Increment()
			}
		}()
	}
	wg.Wait()
	if got := c.Get(); got < 1 || got > 8000 {
		t.Fatalf("value out of range: %d", got)
	}
}

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
	}{
		{"unsynchronized", KindUnsynchronized},
		{"racy", KindUnsynchronized},
		{"Mutex", KindLocked},
		{"locked", KindLocked},
		{" atomic ", KindAtomic},
		{"lock-free", KindAtomic},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		if err != nil {
			t.Errorf("ParseKind(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tc.in, got, tc.want)
		}
		if parsed, _ := ParseKind(got.String()); parsed != got {
			t.Errorf("String() of %v does not parse back", got)
		}
	}

	if _, err := ParseKind("volatile"); !errors.Is(err, api.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestNewFactory_FreshInstances(t *testing.T) {
	f, err := NewFactory(KindAtomic)
	if err != nil {
		t.Fatalf("NewFactory: %v", err)
	}
	a, b := f(), f()
	a.Increment()
	if b.Get() != 0 {
		t.Error("factory returned a shared instance")
	}
	if _, ok := a.(*Atomic); !ok {
		t.Errorf("factory produced %T", a)
	}

	if _, err := NewFactory(Kind(42)); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestKind_Synchronized(t *testing.T) {
	if KindUnsynchronized.Synchronized() {
		t.Error("unsynchronized reported as synchronized")
	}
	if !KindLocked.Synchronized() || !KindAtomic.Synchronized() {
		t.Error("locked/atomic must be synchronized")
	}
}
