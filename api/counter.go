// File: api/counter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Counter contract shared by all synchronization variants.

package api

// Counter is a mutable integer cell. Every implementation starts at zero.
// Variants differ only in the guarantee they give to concurrent Increment calls.
type Counter interface {
	// Increment adds one to the stored value.
	Increment()
	// Get returns the current stored value.
	Get() int64
}

// CounterFactory yields a fresh Counter for every call.
type CounterFactory func() Counter
