package pages

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/starford/lifeos/internal/collab"
	"github.com/starford/lifeos/internal/loop"
	"github.com/starford/lifeos/internal/seed"
)

type emitted struct {
	kind string
	data any
}

// harness mounts pages on a real loop with millisecond delays. All page
// access goes through do so that it happens on the loop goroutine.
type harness struct {
	t      *testing.T
	loop   *loop.Loop
	scope  *loop.Scope
	cancel context.CancelFunc
	events chan emitted
	env    Env
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	l := loop.New()
	ctx, cancel := context.WithCancel(context.Background())
	h := &harness{
		t:      t,
		loop:   l,
		scope:  l.NewScope(nil),
		cancel: cancel,
		events: make(chan emitted, 64),
	}
	h.env = Env{
		Ctx:   ctx,
		Scope: h.scope,
		Emit: func(kind string, data any) {
			h.events <- emitted{kind: kind, data: data}
		},
		Seed: seed.Default(),
		Delays: Delays{
			Reply:  10 * time.Millisecond,
			Listen: 10 * time.Millisecond,
			Unlock: 10 * time.Millisecond,
			Clock:  5 * time.Millisecond,
		},
		Collab: collab.Simulated(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    time.Now,
	}
	t.Cleanup(func() {
		h.scope.Close()
		cancel()
		l.Close()
	})
	return h
}

func (h *harness) do(fn func()) {
	h.t.Helper()
	require.NoError(h.t, h.loop.Do(context.Background(), fn))
}

// unmount closes the page scope the way a session does on navigation.
func (h *harness) unmount() {
	h.do(h.scope.Close)
	h.cancel()
}

func (h *harness) waitEvent(kind string) emitted {
	h.t.Helper()
	timeout := time.After(time.Second)
	for {
		select {
		case ev := <-h.events:
			if ev.kind == kind {
				return ev
			}
		case <-timeout:
			require.FailNowf(h.t, "timeout", "waiting for %s", kind)
		}
	}
}

func (h *harness) noEvent(kind string, within time.Duration) {
	h.t.Helper()
	timeout := time.After(within)
	for {
		select {
		case ev := <-h.events:
			if ev.kind == kind {
				require.FailNowf(h.t, "unexpected event", "%s: %+v", kind, ev.data)
			}
		case <-timeout:
			return
		}
	}
}

// rejecting refuses every credential.
type rejecting struct{}

func (rejecting) Authenticate(context.Context, string, string) error { return collab.ErrRejected }
