// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics, published configuration and debug introspection for
// stress and throughput runs.
//
// Provides concurrent-safe state handling primitives including:
//   - Snapshot reads of the published configuration
//   - Metrics registry fed by trial and throughput runs
//   - Debug probes, including CPU feature detection
package control
