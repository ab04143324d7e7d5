// Package testutil provides shared test helpers for building session managers
// with short delays and observing the events they publish.
package testutil

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/starford/lifeos/internal/session"
)

// Event is one published session event.
type Event struct {
	Session string
	Kind    string
	Data    any
}

// Recorder collects published events.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Publish implements session.Publisher.
func (r *Recorder) Publish(id, kind string, data any) {
	r.mu.Lock()
	r.events = append(r.events, Event{Session: id, Kind: kind, Data: data})
	r.mu.Unlock()
}

// Count returns how many events of kind session has published.
func (r *Recorder) Count(id, kind string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Session == id && ev.Kind == kind {
			n++
		}
	}
	return n
}

// FastDelays keeps every simulated latency in the low milliseconds.
func FastDelays() session.Delays {
	return session.Delays{
		Splash: time.Millisecond,
		Reply:  10 * time.Millisecond,
		Listen: 10 * time.Millisecond,
		Voice:  10 * time.Millisecond,
		Unlock: 10 * time.Millisecond,
	}
}

// Manager creates a session manager that is closed when the test ends.
// Events are recorded on the returned Recorder and, when extra is non-nil,
// forwarded to it as well. opts adjust the deps before the manager is built.
func Manager(t *testing.T, extra session.Publisher, opts ...func(*session.Deps)) (*session.Manager, *Recorder) {
	t.Helper()
	rec := &Recorder{}
	var pub session.Publisher = rec
	if extra != nil {
		pub = session.PublisherFunc(func(id, kind string, data any) {
			rec.Publish(id, kind, data)
			extra.Publish(id, kind, data)
		})
	}
	deps := session.Deps{
		Delays:    FastDelays(),
		Publisher: pub,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&deps)
	}
	m := session.NewManager(deps)
	t.Cleanup(m.Close)
	return m, rec
}

// Eventually polls fn every tick until it returns true or timeout elapses.
func Eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}
