// File: core/counter/counter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package counter

import (
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/momentics/stresskit/api"
)

// Ensure compile-time interface compliance.
var (
	_ api.Counter = (*Unsynchronized)(nil)
	_ api.Counter = (*Locked)(nil)
	_ api.Counter = (*Atomic)(nil)
)

// Unsynchronized performs increment as a separate read and write.
// The individual load and store are atomic, the increment is not: two
// callers may both read n and both write n+1.
type Unsynchronized struct {
	value atomic.Int64
}

// Increment reads, yields the processor, then writes back value+1.
func (c *Unsynchronized) Increment() {
	v := c.value.Load()
	runtime.Gosched()
	c.value.Store(v + 1)
}

// Get returns the last stored value.
func (c *Unsynchronized) Get() int64 {
	return c.value.Load()
}

// Locked guards the value with a mutex held for the full duration of both operations.
type Locked struct {
	mu    sync.Mutex
	value int64
	_     cpu.CacheLinePad
}

// Increment adds one under the lock.
func (c *Locked) Increment() {
	c.mu.Lock()
	c.value++
	c.mu.Unlock()
}

// Get reads the value under the lock.
func (c *Locked) Get() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Atomic is a lock-free counter. The value sits on its own cache line.
type Atomic struct {
	_     cpu.CacheLinePad
	value atomic.Int64
	_     cpu.CacheLinePad
}

// Increment is an atomic fetch-and-add.
func (c *Atomic) Increment() {
	c.value.Add(1)
}

// Get is an atomic load.
func (c *Atomic) Get() int64 {
	return c.value.Load()
}
