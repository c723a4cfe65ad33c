// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations are located
// in separate files (affinity_linux.go, affinity_stub.go) guarded by build tags.

package affinity

import (
	"runtime"

	"github.com/momentics/stresskit/api"
)

// SetAffinity locks the calling goroutine to its OS thread and pins that
// thread to cpuID. On unsupported platforms the thread stays locked and an
// error is returned.
func SetAffinity(cpuID int) error {
	runtime.LockOSThread()
	return setAffinityPlatform(cpuID % runtime.NumCPU())
}

// Release unlocks the calling goroutine from its OS thread.
func Release() {
	runtime.UnlockOSThread()
}

// Pinner implements api.Affinity on top of SetAffinity.
type Pinner struct{}

var _ api.Affinity = Pinner{}

// Pin binds the current goroutine to cpuID.
func (Pinner) Pin(cpuID int) error { return SetAffinity(cpuID) }

// Unpin releases the OS thread.
func (Pinner) Unpin() error {
	Release()
	return nil
}
