// Package fifo provides a bounded-concurrency executor that starts tasks
// strictly in the order they were submitted.
package fifo

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Submit after Close has been called.
var ErrClosed = errors.New("executor closed")

// Task is a unit of work run by the executor.
type Task func()

// Executor runs submitted tasks on a fixed set of worker goroutines.
//
// Tasks are dequeued in submission order. With a concurrency of 1 a task is
// never started before the previous one has returned.
type Executor struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []Task
	running int
	closed  bool
	workers sync.WaitGroup
}

// New starts an executor with the given number of workers. Values below 1
// are treated as 1.
func New(concurrency int) *Executor {
	if concurrency < 1 {
		concurrency = 1
	}
	e := &Executor{}
	e.cond = sync.NewCond(&e.mu)
	e.workers.Add(concurrency)
	for range concurrency {
		go e.process()
	}
	return e
}

// Submit appends a task to the queue and returns without waiting for it.
func (e *Executor) Submit(task Task) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.pending = append(e.pending, task)
	e.cond.Signal()
	return nil
}

// Pending returns the number of tasks waiting to start.
func (e *Executor) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

// Running returns the number of tasks currently executing.
func (e *Executor) Running() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Close stops accepting tasks and waits until every queued task has run or
// ctx is done. Calling Close more than once is safe.
func (e *Executor) Close(ctx context.Context) error {
	e.mu.Lock()
	e.closed = true
	e.cond.Broadcast()
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Executor) process() {
	defer e.workers.Done()
	for {
		e.mu.Lock()
		for len(e.pending) == 0 && !e.closed {
			e.cond.Wait()
		}
		if len(e.pending) == 0 {
			// Closed and drained.
			e.mu.Unlock()
			return
		}
		task := e.pending[0]
		e.pending[0] = nil
		e.pending = e.pending[1:]
		e.running++
		e.mu.Unlock()

		task()

		e.mu.Lock()
		e.running--
		e.mu.Unlock()
	}
}
