// File: core/concurrency/pool.go
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pool dispatches tasks across a fixed set of worker goroutines. Submissions go
// to a bounded lock-free queue first and spill into an unbounded FIFO when it
// is full, so Submit never blocks. Workers park on a wake channel when both
// queues are empty.

package concurrency

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/stresskit/affinity"
	"github.com/momentics/stresskit/api"
)

// DefaultShutdownTimeout bounds each stage of the escalating shutdown.
const DefaultShutdownTimeout = 10 * time.Second

// Options configures a Pool.
type Options struct {
	Workers         int           // fixed number of workers, must be positive
	QueueCapacity   int           // lock-free queue capacity before spilling over
	ShutdownTimeout time.Duration // per-stage wait in Shutdown
	CPUAffinity     bool          // pin worker i to CPU i mod NumCPU
	Pinner          api.Affinity  // used when CPUAffinity is set; nil means affinity.Pinner
	Logger          *slog.Logger  // nil means slog.Default()
}

// DefaultOptions returns a four-worker pool configuration.
func DefaultOptions() Options {
	return Options{
		Workers:         4,
		QueueCapacity:   1024,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

type job struct {
	task   api.Task
	future *Future
}

// Pool manages a fixed number of worker goroutines.
type Pool struct {
	opts   Options
	log    *slog.Logger
	pinner api.Affinity // nil when workers are not pinned

	ring       *LockFreeQueue[*job]
	overflowMu sync.Mutex
	overflow   *queue.Queue // of *job, guarded by overflowMu
	wake       chan struct{}

	// submitMu orders Submit against ShutdownNow so nothing is enqueued after the final drain.
	submitMu sync.RWMutex
	closed   atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc

	wg         sync.WaitGroup
	terminated chan struct{}

	shutdownMu sync.Mutex
	state      atomic.Int32

	submitted atomic.Int64
	completed atomic.Int64
	cancelled atomic.Int64
}

// NewPool starts opts.Workers workers.
func NewPool(opts Options) (*Pool, error) {
	if opts.Workers <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkerCount, opts.Workers)
	}
	if opts.QueueCapacity <= 0 {
		opts.QueueCapacity = DefaultOptions().QueueCapacity
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = DefaultShutdownTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		opts:       opts,
		log:        logger.With("component", "pool"),
		ring:       NewLockFreeQueue[*job](opts.QueueCapacity),
		overflow:   queue.New(),
		wake:       make(chan struct{}, opts.Workers),
		ctx:        ctx,
		cancel:     cancel,
		terminated: make(chan struct{}),
	}
	p.state.Store(int32(api.PoolRunning))
	if opts.CPUAffinity {
		p.pinner = opts.Pinner
		if p.pinner == nil {
			p.pinner = affinity.Pinner{}
		}
	}

	p.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go p.worker(i)
	}
	go func() {
		p.wg.Wait()
		close(p.terminated)
	}()
	return p, nil
}

// Submit enqueues task and returns its completion handle without blocking.
func (p *Pool) Submit(task api.Task) (*Future, error) {
	p.submitMu.RLock()
	defer p.submitMu.RUnlock()
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	j := &job{task: task, future: NewFuture()}
	p.submitted.Add(1)
	if !p.ring.Enqueue(j) {
		p.overflowMu.Lock()
		p.overflow.Add(j)
		p.overflowMu.Unlock()
	}
	select {
	case p.wake <- struct{}{}:
	default:
		// every worker already holds a pending wake-up
	}
	return j.future, nil
}

// ShutdownNow stops accepting work, cancels the context handed to running
// tasks and completes every queued task with ErrTaskCancelled. It returns the
// number of tasks drained. Calling it again re-issues the cancellation.
func (p *Pool) ShutdownNow() int {
	p.submitMu.Lock()
	p.closed.Store(true)
	p.submitMu.Unlock()

	p.state.CompareAndSwap(int32(api.PoolRunning), int32(api.PoolShuttingDown))
	p.cancel()

	drained := 0
	for {
		j, ok := p.next()
		if !ok {
			break
		}
		p.cancelled.Add(1)
		j.future.Complete(ErrTaskCancelled)
		drained++
	}
	return drained
}

// AwaitTermination waits up to timeout for every worker to exit. It reports
// whether the pool terminated and returns ctx.Err() if the wait is interrupted.
func (p *Pool) AwaitTermination(ctx context.Context, timeout time.Duration) (bool, error) {
	// A terminated pool wins over an already cancelled ctx.
	select {
	case <-p.terminated:
		return true, nil
	default:
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-p.terminated:
		return true, nil
	case <-timer.C:
		return false, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// State returns the current lifecycle state.
func (p *Pool) State() api.PoolState {
	return api.PoolState(p.state.Load())
}

// NumWorkers returns the fixed worker count.
func (p *Pool) NumWorkers() int {
	return p.opts.Workers
}

// Stats returns basic pool metrics.
func (p *Pool) Stats() map[string]int64 {
	submitted := p.submitted.Load()
	completed := p.completed.Load()
	cancelled := p.cancelled.Load()
	p.overflowMu.Lock()
	overflow := p.overflow.Length()
	p.overflowMu.Unlock()
	return map[string]int64{
		"total_tasks":     submitted,
		"completed_tasks": completed,
		"cancelled_tasks": cancelled,
		"pending_tasks":   submitted - completed - cancelled,
		"queued_ring":     int64(p.ring.Len()),
		"ring_capacity":   int64(p.ring.Cap()),
		"queued_overflow": int64(overflow),
		"num_workers":     int64(p.opts.Workers),
	}
}

// next pops from the lock-free queue, then from the overflow.
func (p *Pool) next() (*job, bool) {
	if j, ok := p.ring.Dequeue(); ok {
		return j, true
	}
	p.overflowMu.Lock()
	defer p.overflowMu.Unlock()
	if p.overflow.Length() == 0 {
		return nil, false
	}
	return p.overflow.Remove().(*job), true
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	if p.pinner != nil {
		if err := p.pinner.Pin(id); err != nil {
			p.log.Warn("affinity pin warning", "worker", id, "err", err)
		}
		defer p.pinner.Unpin()
	}

	for {
		if p.ctx.Err() != nil {
			return
		}
		if j, ok := p.next(); ok {
			p.execute(j)
			continue
		}
		select {
		case <-p.wake:
		case <-p.ctx.Done():
			return
		}
	}
}

// execute runs one job. A job dequeued after cancellation is not started.
func (p *Pool) execute(j *job) {
	if p.ctx.Err() != nil {
		p.cancelled.Add(1)
		j.future.Complete(ErrTaskCancelled)
		return
	}
	err := p.safeExecute(j.task)
	p.completed.Add(1)
	j.future.Complete(err)
}

func (p *Pool) safeExecute(task api.Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()
	return task(p.ctx)
}
