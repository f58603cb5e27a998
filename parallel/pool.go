package parallel

import (
	"runtime"
	"sync"
)

type (
	WorkerFunc func(func())
	WaitFunc   func(done bool)
	CancelFunc func()
)

type Pool struct {
	wg     sync.WaitGroup
	Do     WorkerFunc
	Wait   WaitFunc
	Cancel CancelFunc
}

// Start spawns numWorkers goroutines, or GOMAXPROCS if numWorkers < 1.
// A single worker pool runs every job inline in Do.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}

	if numWorkers > 1 {
		workChan := make(chan func(), numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for {
					f, ok := <-workChan
					if !ok {
						return
					}
					f()
				}
			})
		}

		pool.Do = func(f func()) {
			workChan <- f
		}

		pool.Wait = func(done bool) {
			if done {
				pool.Cancel()
			}
			pool.wg.Wait()
		}
		pool.Cancel = sync.OnceFunc(func() { close(workChan) })
	}

	return pool
}

// Split cuts [0, n) into at most numWorkers contiguous ranges and runs fn
// on each of them, returning once all calls are done.
func Split(n, numWorkers int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	numWorkers = min(numWorkers, n)

	pool := Start(numWorkers)
	step := (n + numWorkers - 1) / numWorkers
	for lo := 0; lo < n; lo += step {
		hi := min(lo+step, n)
		pool.Do(func() {
			fn(lo, hi)
		})
	}
	pool.Wait(true)
}
