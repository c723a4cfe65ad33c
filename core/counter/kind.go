// File: core/counter/kind.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package counter

import (
	"fmt"
	"strings"

	"github.com/momentics/stresskit/api"
)

// Kind selects a synchronization strategy.
type Kind int

const (
	KindUnsynchronized Kind = iota
	KindLocked
	KindAtomic
)

// Kinds lists every supported variant in declaration order.
func Kinds() []Kind {
	return []Kind{KindUnsynchronized, KindLocked, KindAtomic}
}

func (k Kind) String() string {
	switch k {
	case KindUnsynchronized:
		return "unsynchronized"
	case KindLocked:
		return "locked"
	case KindAtomic:
		return "atomic"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Synchronized reports whether the variant guarantees no lost updates.
func (k Kind) Synchronized() bool {
	return k == KindLocked || k == KindAtomic
}

// ParseKind accepts the canonical names plus a few common aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unsynchronized", "unsafe", "racy":
		return KindUnsynchronized, nil
	case "locked", "mutex", "lock":
		return KindLocked, nil
	case "atomic", "lockfree", "lock-free":
		return KindAtomic, nil
	}
	return 0, fmt.Errorf("counter: unknown kind %q: %w", s, api.ErrInvalidArgument)
}

// New returns a fresh zero-valued counter of the given kind.
func New(k Kind) (api.Counter, error) {
	switch k {
	case KindUnsynchronized:
		return &Unsynchronized{}, nil
	case KindLocked:
		return &Locked{}, nil
	case KindAtomic:
		return &Atomic{}, nil
	}
	return nil, fmt.Errorf("counter: %v: %w", k, api.ErrInvalidArgument)
}

// NewFactory returns a factory producing fresh counters of kind k.
func NewFactory(k Kind) (api.CounterFactory, error) {
	if _, err := New(k); err != nil {
		return nil, err
	}
	return func() api.Counter {
		c, _ := New(k)
		return c
	}, nil
}
