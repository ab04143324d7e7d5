// Package session ties one client's application context to its own event
// loop. A Session owns the shell (theme, navigation, voice panel) for its
// whole lifetime and exactly one mounted page at a time. Every read and
// mutation runs on the session loop.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/starford/lifeos/internal/apperr"
	"github.com/starford/lifeos/internal/collab"
	"github.com/starford/lifeos/internal/loop"
	"github.com/starford/lifeos/internal/metrics"
	"github.com/starford/lifeos/internal/pages"
	"github.com/starford/lifeos/internal/seed"
	"github.com/starford/lifeos/internal/shell"
)

// Delays are the simulated latencies of the shell and the pages.
type Delays struct {
	Splash time.Duration
	Reply  time.Duration
	Listen time.Duration
	Voice  time.Duration
	Unlock time.Duration
	Clock  time.Duration
}

func (d Delays) pages() pages.Delays {
	return pages.Delays{Reply: d.Reply, Listen: d.Listen, Unlock: d.Unlock, Clock: d.Clock}
}

// embedded serves the built-in seed document.
type embedded struct{}

func (embedded) Snapshot() *seed.Data { return seed.Default() }

// SeedSource hands out private copies of the seed data.
type SeedSource interface {
	Snapshot() *seed.Data
}

// Publisher receives every event emitted by a session.
type Publisher interface {
	Publish(sessionID, kind string, data any)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(sessionID, kind string, data any)

// Publish implements Publisher.
func (f PublisherFunc) Publish(sessionID, kind string, data any) { f(sessionID, kind, data) }

// Deps are shared by every session of a Manager.
type Deps struct {
	Seed      SeedSource
	Collab    collab.Set
	Delays    Delays
	Publisher Publisher
	Metrics   *metrics.Metrics
	// OnClose, if set, is called with the id of every session the manager
	// tears down, after its loop has stopped.
	OnClose func(id string)
	Logger    *slog.Logger
	Now       func() time.Time
}

func (d *Deps) withDefaults() {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Seed == nil {
		d.Seed = embedded{}
	}
	sim := collab.Simulated()
	if d.Collab.Chat == nil {
		d.Collab.Chat = sim.Chat
	}
	if d.Collab.Speech == nil {
		d.Collab.Speech = sim.Speech
	}
	if d.Collab.Voice == nil {
		d.Collab.Voice = sim.Voice
	}
	if d.Collab.Auth == nil {
		d.Collab.Auth = sim.Auth
	}
}

func (d *Deps) observer() loop.Observer {
	if d.Metrics == nil {
		return nil
	}
	return d.Metrics
}

// View is the rendered session: the shell plus the mounted page. The page
// is withheld while the splash is showing.
type View struct {
	ID    string      `json:"id"`
	Shell shell.View  `json:"shell"`
	Page  *pages.View `json:"page,omitempty"`
}

// Session is one client's application context.
type Session struct {
	id     string
	deps   *Deps
	logger *slog.Logger
	loop   *loop.Loop

	ctx    context.Context
	cancel context.CancelFunc

	// Owned by the loop goroutine.
	shellScope *loop.Scope
	shell      *shell.Shell
	page       pages.Page
	pageScope  *loop.Scope
	pageCancel context.CancelFunc

	lastSeen  atomic.Int64
	closeOnce sync.Once
}

func newSession(id, path string, deps *Deps) (*Session, error) {
	factory, ok := pages.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("route %q: %w", path, apperr.ErrNotFound)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:     id,
		deps:   deps,
		logger: deps.Logger.With(slog.String("session", id)),
		loop:   loop.New(),
		ctx:    ctx,
		cancel: cancel,
	}
	s.touch()

	err := s.loop.Do(context.Background(), func() {
		snap := deps.Seed.Snapshot()
		s.shellScope = s.loop.NewScope(deps.observer())
		s.shell = shell.New(shell.Env{
			Ctx:      ctx,
			Scope:    s.shellScope,
			Emit:     s.emit,
			Speech:   deps.Collab.Voice,
			Splash:   deps.Delays.Splash,
			Voice:    deps.Delays.Voice,
			Commands: snap.Voice.Commands,
			Logger:   s.logger,
		}, path)
		s.mount(path, factory, snap)
	})
	if err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// LastSeen is the time of the most recent client call.
func (s *Session) LastSeen() time.Time { return time.Unix(0, s.lastSeen.Load()) }

func (s *Session) touch() { s.lastSeen.Store(s.deps.Now().UnixNano()) }

// Touch marks the session as in use without running anything on it. Event
// streams call it so a client that only listens is not reaped.
func (s *Session) Touch() { s.touch() }

func (s *Session) emit(kind string, data any) {
	if m := s.deps.Metrics; m != nil {
		m.Events.WithLabelValues(kind).Inc()
	}
	if p := s.deps.Publisher; p != nil {
		p.Publish(s.id, kind, data)
	}
}

// mount runs on the loop.
func (s *Session) mount(path string, factory pages.Factory, snap *seed.Data) {
	ctx, cancel := context.WithCancel(s.ctx)
	scope := s.loop.NewScope(s.deps.observer())
	s.page = factory(pages.Env{
		Ctx:    ctx,
		Scope:  scope,
		Emit:   s.emit,
		Seed:   snap,
		Delays: s.deps.Delays.pages(),
		Collab: s.deps.Collab,
		Logger: s.logger.With(slog.String("route", path)),
		Now:    s.deps.Now,
	})
	s.pageScope = scope
	s.pageCancel = cancel
	if m := s.deps.Metrics; m != nil {
		m.PageMounts.WithLabelValues(path).Inc()
	}
}

// unmount runs on the loop.
func (s *Session) unmount() {
	if s.page == nil {
		return
	}
	s.pageScope.Close()
	s.pageCancel()
	s.page = nil
}

// run executes fn on the loop and renders the result.
func (s *Session) run(ctx context.Context, fn func() error) (View, error) {
	s.touch()
	var (
		view  View
		fnErr error
	)
	err := s.loop.Do(ctx, func() {
		if fnErr = fn(); fnErr == nil {
			view = s.render()
		}
	})
	if errors.Is(err, loop.ErrClosed) {
		return View{}, fmt.Errorf("session %s: %w", s.id, apperr.ErrClosed)
	}
	if err != nil {
		return View{}, err
	}
	return view, fnErr
}

func (s *Session) render() View {
	v := View{ID: s.id, Shell: s.shell.Render()}
	if !s.shell.Loading() && s.page != nil {
		pv := s.page.Render()
		v.Page = &pv
	}
	return v
}

// View renders the session.
func (s *Session) View(ctx context.Context) (View, error) {
	return s.run(ctx, func() error { return nil })
}

// Navigate replaces the mounted page. Unknown paths fail with
// apperr.ErrNotFound and leave the route unchanged; the current path is a
// no-op. Unmounting cancels every timer the old page scheduled.
func (s *Session) Navigate(ctx context.Context, path string) (View, error) {
	factory, ok := pages.Lookup(path)
	if !ok {
		return View{}, fmt.Errorf("route %q: %w", path, apperr.ErrNotFound)
	}
	return s.run(ctx, func() error {
		if s.shell.Path() == path {
			return nil
		}
		s.unmount()
		s.mount(path, factory, s.deps.Seed.Snapshot())
		s.shell.SetPath(path)
		return nil
	})
}

// Shell applies fn to the application context.
func (s *Session) Shell(ctx context.Context, fn func(*shell.Shell)) (View, error) {
	return s.run(ctx, func() error {
		fn(s.shell)
		return nil
	})
}

// Path returns the current route.
func (s *Session) Path(ctx context.Context) (string, error) {
	var path string
	_, err := s.run(ctx, func() error {
		path = s.shell.Path()
		return nil
	})
	return path, err
}

// WithPage applies fn to the mounted page when it is a P. Otherwise it
// fails with apperr.ErrPageInactive and nothing changes.
func WithPage[P pages.Page](ctx context.Context, s *Session, fn func(P)) (View, error) {
	return s.run(ctx, func() error {
		p, ok := s.page.(P)
		if !ok {
			return fmt.Errorf("session %s on %s: %w", s.id, s.shell.Path(), apperr.ErrPageInactive)
		}
		fn(p)
		return nil
	})
}

// Close tears the session down: both scopes close, so no pending timer can
// fire, and the loop stops. It is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		_ = s.loop.Do(context.Background(), func() {
			s.unmount()
			if s.shellScope != nil {
				s.shellScope.Close()
			}
		})
		s.cancel()
		s.loop.Close()
	})
}

// Closed reports whether the session has been torn down.
func (s *Session) Closed() bool { return s.loop.Closed() }
