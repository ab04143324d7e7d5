package loop

import (
	"errors"
	"sync"
	"time"
)

// ErrClosed is returned when work is submitted to a closed loop.
var ErrClosed = errors.New("loop: closed")

// Observer receives timer lifecycle notifications. Implementations must be
// safe for concurrent use.
type Observer interface {
	TimerFired()
	TimerCancelled()
}

// Scope owns the timers of one component lifetime (a mounted page, a
// session shell). All callbacks run on the owning loop.
type Scope struct {
	loop     *Loop
	observer Observer

	mu     sync.Mutex
	timers map[*Timer]struct{}
	closed bool
}

// NewScope creates a scope whose callbacks run on l. observer may be nil.
func (l *Loop) NewScope(observer Observer) *Scope {
	return &Scope{
		loop:     l,
		observer: observer,
		timers:   make(map[*Timer]struct{}),
	}
}

// Timer is a pending one-shot or interval callback.
type Timer struct {
	scope    *Scope
	interval time.Duration
	fn       func()

	mu        sync.Mutex
	t         *time.Timer
	cancelled bool
	done      bool
}

// After schedules fn once after d. On a closed scope it returns a timer
// that is already cancelled.
func (s *Scope) After(d time.Duration, fn func()) *Timer {
	return s.schedule(d, 0, fn)
}

// Every schedules fn every d until the timer is stopped or the scope closes.
func (s *Scope) Every(d time.Duration, fn func()) *Timer {
	return s.schedule(d, d, fn)
}

func (s *Scope) schedule(d, interval time.Duration, fn func()) *Timer {
	tm := &Timer{scope: s, interval: interval, fn: fn}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		tm.cancelled = true
		return tm
	}
	s.timers[tm] = struct{}{}
	tm.mu.Lock()
	tm.t = time.AfterFunc(d, tm.enqueue)
	tm.mu.Unlock()
	return tm
}

// enqueue runs on the runtime timer goroutine and hands the callback over
// to the loop.
func (tm *Timer) enqueue() {
	if !tm.scope.loop.Post(tm.fire) {
		tm.scope.forget(tm)
	}
}

// fire runs on the loop goroutine.
func (tm *Timer) fire() {
	tm.mu.Lock()
	if tm.cancelled || tm.done {
		tm.mu.Unlock()
		return
	}
	if tm.interval > 0 {
		tm.t.Reset(tm.interval)
	} else {
		tm.done = true
	}
	tm.mu.Unlock()

	if tm.interval == 0 {
		tm.scope.forget(tm)
	}
	if obs := tm.scope.observer; obs != nil {
		obs.TimerFired()
	}
	tm.fn()
}

// Stop cancels the timer. It reports whether the timer was still pending.
func (tm *Timer) Stop() bool {
	if tm == nil || !tm.cancel() {
		return false
	}
	tm.scope.forget(tm)
	return true
}

func (tm *Timer) cancel() bool {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if tm.cancelled || tm.done {
		return false
	}
	tm.cancelled = true
	if tm.t != nil {
		tm.t.Stop()
	}
	if obs := tm.scope.observer; obs != nil {
		obs.TimerCancelled()
	}
	return true
}

// Pending reports whether the callback may still run.
func (tm *Timer) Pending() bool {
	if tm == nil {
		return false
	}
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return !tm.cancelled && !tm.done
}

func (s *Scope) forget(tm *Timer) {
	s.mu.Lock()
	delete(s.timers, tm)
	s.mu.Unlock()
}

// Pending returns the number of timers that may still fire.
func (s *Scope) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Close cancels every pending timer. Callbacks already queued on the loop
// observe the cancellation and do nothing. Close is idempotent.
func (s *Scope) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	timers := s.timers
	s.timers = make(map[*Timer]struct{})
	s.mu.Unlock()

	for tm := range timers {
		tm.cancel()
	}
}

// Closed reports whether the scope has been closed.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
