// File: core/throughput/primes.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package throughput

import (
	"context"
	"math/big"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/momentics/stresskit/api"
)

// DefaultCertainty bounds the false-positive rate at 2^-50.
const DefaultCertainty = 50

// BigPrimer is the probable-prime predicate backed by math/big.
type BigPrimer struct{}

var _ api.ProbablePrimer = BigPrimer{}

// ProbablyPrime runs ceil(certainty/2) Miller-Rabin rounds plus a
// Baillie-PSW test, giving an error bound of at most 2^-certainty.
// A non-positive certainty always reports true.
func (BigPrimer) ProbablyPrime(x int64, certainty int) bool {
	if certainty <= 0 {
		return true
	}
	if x < 2 {
		return false
	}
	return big.NewInt(x).ProbablyPrime((certainty + 1) / 2)
}

// CountSequential counts probable primes in [lo, hi] on the calling goroutine.
func CountSequential(ctx context.Context, p api.ProbablePrimer, lo, hi int64, certainty int) (int64, error) {
	var count int64
	for x := lo; x <= hi; x++ {
		if x&0xfff == 0 {
			if err := ctx.Err(); err != nil {
				return count, err
			}
		}
		if p.ProbablyPrime(x, certainty) {
			count++
		}
	}
	return count, nil
}

// chunksPerWorker oversplits the range so that cheap and expensive regions
// balance across workers.
const chunksPerWorker = 8

// CountParallel counts probable primes in [lo, hi] across parallelism
// goroutines. Each chunk is an independent filter-count; partial counts are
// summed at the end. parallelism <= 0 means GOMAXPROCS.
func CountParallel(ctx context.Context, p api.ProbablePrimer, lo, hi int64, certainty, parallelism int) (int64, error) {
	if hi < lo {
		return 0, nil
	}
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	span := hi - lo + 1
	chunks := int64(parallelism * chunksPerWorker)
	if chunks > span {
		chunks = span
	}
	chunkSize := (span + chunks - 1) / chunks

	var (
		wg    sync.WaitGroup
		next  atomic.Int64
		total atomic.Int64
		first atomic.Pointer[error]
	)
	for w := 0; w < parallelism; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := next.Add(1) - 1
				if i >= chunks {
					return
				}
				from := lo + i*chunkSize
				to := min(from+chunkSize-1, hi)
				n, err := CountSequential(ctx, p, from, to, certainty)
				total.Add(n)
				if err != nil {
					first.CompareAndSwap(nil, &err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if e := first.Load(); e != nil {
		return total.Load(), *e
	}
	return total.Load(), nil
}
