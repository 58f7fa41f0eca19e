package bgone

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Future is the handle returned by ProcessAsync. Wait blocks until the
// pipeline completes or ctx is done, whichever comes first; Done reports
// completion without blocking.
type Future struct {
	done   chan struct{}
	result []byte
	err    error
}

// Wait blocks until the future resolves or ctx is canceled.
func (f *Future) Wait(ctx context.Context) ([]byte, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done reports whether the future has resolved.
func (f *Future) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

var (
	poolOnce  sync.Once
	poolJobs  chan func()
	poolGuard *semaphore.Weighted
)

// pool lazily builds the process-wide worker pool the first time
// ProcessAsync is called, sized to runtime.GOMAXPROCS(0) and reused across
// every subsequent call (spec §5 resource model). A weighted semaphore of
// 4×workers slots additionally bounds how many images may be in flight
// (queued or running) at once, so a burst of ProcessAsync calls against the
// single shared pool cannot pile up unboundedly ahead of the fixed worker
// count. A slot is released when its image finishes.
func pool() (chan func(), *semaphore.Weighted) {
	poolOnce.Do(func() {
		workers := runtime.GOMAXPROCS(0)
		if workers < 1 {
			workers = 1
		}
		poolJobs = make(chan func())
		poolGuard = semaphore.NewWeighted(int64(workers) * 4)
		for i := 0; i < workers; i++ {
			go func() {
				for job := range poolJobs {
					job()
				}
			}()
		}
	})
	return poolJobs, poolGuard
}

// ProcessAsync dispatches Process onto the shared worker pool and returns a
// *Future as soon as a semaphore slot is free; when all slots are taken it
// waits for an in-flight image to finish first. It never blocks the calling
// goroutine during decode, unmix, or encode.
func ProcessAsync(opts Options) *Future {
	jobs, guard := pool()
	f := &Future{done: make(chan struct{})}

	ctx := context.Background()
	if err := guard.Acquire(ctx, 1); err != nil {
		f.err = err
		close(f.done)
		return f
	}

	go func() {
		jobs <- func() {
			defer guard.Release(1)
			defer close(f.done)
			f.result, f.err = Process(ctx, opts)
		}
	}()
	return f
}
