// File: core/counter/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package counter provides three api.Counter variants that differ only in how
// concurrent increments are synchronized:
//
//   - Unsynchronized: read-then-write with no ordering, updates can be lost.
//   - Locked: every operation runs under one mutex.
//   - Atomic: fetch-and-add increment, atomic load.
//
// Variants are selected by Kind so a caller can run the same trial protocol
// against each of them.
package counter
