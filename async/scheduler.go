// Package async schedules blocking work, such as texture decodes and
// wallpaper submission, off the UI goroutine.
package async

import (
	"runtime"
	"sync"
)

// Scheduler schedules work according to some strategy.
// Implementations can implement the best way to distribute work for a given
// application.
type Scheduler interface {
	// Schedule a piece of work. This method is allowed to block.
	Schedule(func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(func())

// Schedule implements Scheduler.
func (fn SchedulerFunc) Schedule(work func()) {
	fn(work)
}

// Spawn runs every unit of work on its own goroutine.
//
// Suited to one-shot work that must never wait behind other work, like
// applying a wallpaper.
var Spawn Scheduler = SchedulerFunc(func(work func()) {
	if work != nil {
		go work()
	}
})

// FixedWorkerPool implements a simple fixed-size worker pool that lets go
// runtime schedule work atop some number of goroutines.
//
// This pool will minimize goroutine latency at the cost of maintaining the
// configured number of goroutines throughout the lifetime of the pool.
type FixedWorkerPool struct {
	// Workers specifies the number of concurrent workers in this pool.
	Workers int
	// queue of work. Unbuffered so it will block if worker pool is at capacity.
	queue chan func()
	// once time initialization.
	sync.Once
}

// Schedule work to be executed by the available workers. This is a blocking
// call if all workers are busy.
func (p *FixedWorkerPool) Schedule(work func()) {
	p.Once.Do(func() {
		p.queue = make(chan func())
		if p.Workers <= 0 {
			p.Workers = runtime.NumCPU()
		}
		for ii := 0; ii < p.Workers; ii++ {
			go func() {
				for w := range p.queue {
					if w != nil {
						w()
					}
				}
			}()
		}
	})
	p.queue <- work
}

// DynamicWorkerPool implements a simple dynamic-sized worker pool that spins up
// a new worker per unit of work, until the maximum number of workers has been
// reached.
//
// This pool will minimize idle memory as goroutines will die off once complete,
// but will incur the latency cost of spinning up goroutines on-the-fly.
type DynamicWorkerPool struct {
	// Workers specifies the maximum allowed number of concurrent workers in
	// this pool. Defaults to NumCPU.
	Workers int
	// count is a semaphore that limits the number of workers at any given
	// time. The size of the buffer for the channel provides the limit.
	count chan struct{}
	// once time initialization.
	sync.Once
}

// Schedule work to be executed by the available workers. This is a blocking
// call if all workers are busy.
//
// Each worker holds a semaphore for the duration of it's life and returns it
// before exiting.
func (p *DynamicWorkerPool) Schedule(work func()) {
	p.Once.Do(func() {
		if p.Workers <= 0 {
			p.Workers = runtime.NumCPU()
		}
		p.count = make(chan struct{}, p.Workers)
	})
	if work == nil {
		return
	}
	p.count <- struct{}{}
	go func() {
		defer func() { <-p.count }()
		work()
	}()
}
