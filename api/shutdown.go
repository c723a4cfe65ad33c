// File: api/shutdown.go
// Package api defines unified graceful shutdown contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import "context"

// GracefulShutdown is implemented by components with a bounded teardown.
type GracefulShutdown interface {
	// Shutdown stops the component and releases its resources. It returns
	// ctx.Err() if the caller is interrupted while waiting; a teardown that
	// had to be abandoned is logged and is not an error.
	Shutdown(ctx context.Context) error
}
