// File: api/control.go
// Package api defines Control interface.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Control manages the published harness config and runtime metrics.
type Control interface {
	GetConfig() map[string]any
	SetConfig(cfg map[string]any) error

	// SetMetric records the latest value of a named measurement.
	SetMetric(key string, value any)
	// Stats merges metrics with the output of every debug probe.
	Stats() map[string]any
	RegisterDebugProbe(name string, fn func() any)
}
