// Package loop runs a session's state transitions on a single goroutine.
//
// Every mutation of a session, whether it comes from an HTTP handler or a
// timer, is executed by the loop goroutine, so page models never need locks.
// Timers are created through a Scope that is bound to a component lifetime;
// closing the scope cancels everything it scheduled.
package loop

import (
	"context"
	"sync/atomic"
)

// Loop executes submitted functions one at a time in submission order.
type Loop struct {
	tasks   chan func()
	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// New starts a loop goroutine. Close must be called to release it.
func New() *Loop {
	l := &Loop{
		tasks:   make(chan func(), 256),
		stopCh:  make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.stopped)
	for {
		select {
		case <-l.stopCh:
			return
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Do runs fn on the loop and waits for it to return. It must not be called
// from the loop goroutine itself. ctx only bounds the wait for a queue slot:
// once fn is queued it will run, so Do waits for it and reports nil.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	if l.closed.Load() {
		return ErrClosed
	}
	done := make(chan struct{})
	task := func() {
		defer close(done)
		fn()
	}
	select {
	case l.tasks <- task:
	case <-l.stopped:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-l.stopped:
		return ErrClosed
	}
}

// Post queues fn without waiting. It reports false when the loop is closed.
func (l *Loop) Post(fn func()) bool {
	if l.closed.Load() {
		return false
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.stopped:
		return false
	}
}

// Close stops the loop. Queued functions that have not started are dropped.
func (l *Loop) Close() {
	if l.closed.CompareAndSwap(false, true) {
		close(l.stopCh)
	}
	<-l.stopped
}

// Closed reports whether Close has been called.
func (l *Loop) Closed() bool {
	return l.closed.Load()
}
