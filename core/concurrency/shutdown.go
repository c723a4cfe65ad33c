// File: core/concurrency/shutdown.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Escalating shutdown:
//
//	Running -> ShuttingDown -> Terminated
//	                        -> (timeout, cancel again) -> Terminated | Abandoned
//
// Worst-case latency is two ShutdownTimeout windows.

package concurrency

import (
	"context"

	"github.com/momentics/stresskit/api"
)

// Shutdown forcibly stops the pool and waits for its workers in at most two
// bounded stages. Abandoning a pool that still has a live worker is logged,
// not returned as an error. The only error is ctx.Err() when the caller is
// interrupted while waiting.
func (p *Pool) Shutdown(ctx context.Context) (api.PoolState, error) {
	p.shutdownMu.Lock()
	defer p.shutdownMu.Unlock()

	switch st := p.State(); st {
	case api.PoolTerminated, api.PoolAbandoned:
		return st, nil
	}

	timeout := p.opts.ShutdownTimeout
	p.ShutdownNow()
	ok, err := p.AwaitTermination(ctx, timeout)
	if err != nil {
		return p.State(), err
	}
	if ok {
		p.state.Store(int32(api.PoolTerminated))
		return api.PoolTerminated, nil
	}

	p.log.Warn("pool did not complete within timeout", "timeout", timeout)
	p.ShutdownNow()
	ok, err = p.AwaitTermination(ctx, timeout)
	if err != nil {
		return p.State(), err
	}
	if ok {
		p.state.Store(int32(api.PoolTerminated))
		return api.PoolTerminated, nil
	}

	p.log.Error("pool did not terminate", "timeout", timeout, "stats", p.Stats())
	p.state.Store(int32(api.PoolAbandoned))
	return api.PoolAbandoned, nil
}
