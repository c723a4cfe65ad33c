// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations and constants.

package api

// PoolState enumerates the lifecycle of a worker pool.
type PoolState int32

const (
	PoolRunning PoolState = iota
	PoolShuttingDown
	PoolTerminated
	PoolAbandoned
)

func (s PoolState) String() string {
	switch s {
	case PoolRunning:
		return "running"
	case PoolShuttingDown:
		return "shutting-down"
	case PoolTerminated:
		return "terminated"
	case PoolAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}
