// Package shell holds the application context that outlives page mounts:
// the theme and loading splash, the navigation bar and the floating voice
// panel. A Shell lives for a whole session and schedules its timers on the
// session scope.
package shell

import (
	"context"
	"log/slog"
	"time"

	"github.com/starford/lifeos/internal/collab"
	"github.com/starford/lifeos/internal/loop"
	"github.com/starford/lifeos/internal/pages"
)

// Event kinds emitted by the shell.
const (
	EventReady           = "shell.ready"
	EventRouteChanged    = "route.changed"
	EventVoiceTranscript = "voice.transcript"
)

// Env is handed to a Shell when its session starts.
type Env struct {
	Ctx    context.Context
	Scope  *loop.Scope
	Emit   func(kind string, data any)
	Speech collab.SpeechService

	Splash time.Duration
	Voice  time.Duration

	Commands []string
	Logger   *slog.Logger
}

func (e *Env) emit(kind string, data any) {
	if e.Emit != nil {
		e.Emit(kind, data)
	}
}

// Shell is the session-wide application context.
type Shell struct {
	env Env

	dark     bool
	loading  bool
	path     string
	menuOpen bool

	voice *Voice
}

// Splash is what the client shows while loading.
type Splash struct {
	Title   string `json:"title"`
	Tagline string `json:"tagline"`
	Status  string `json:"status"`
}

// SplashScreen is the fixed loading copy.
var SplashScreen = Splash{
	Title:   "LifeOS",
	Tagline: "Your Digital Brain Super App",
	Status:  "Initializing your digital universe...",
}

// NavItem is one entry of the navigation bar.
type NavItem struct {
	Path   string `json:"path"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// View is the rendered shell.
type View struct {
	Theme    string    `json:"theme"`
	Loading  bool      `json:"loading"`
	Splash   *Splash   `json:"splash,omitempty"`
	Path     string    `json:"path"`
	Nav      []NavItem `json:"nav"`
	MenuOpen bool      `json:"menu_open"`
	Voice    VoiceView `json:"voice"`
}

// New starts a shell on path in the loading state. The splash ends after
// env.Splash; a zero delay ends it on the first loop turn.
func New(env Env, path string) *Shell {
	s := &Shell{
		env:     env,
		dark:    true,
		loading: true,
		path:    path,
	}
	s.voice = newVoice(&s.env)
	env.Scope.After(env.Splash, s.ready)
	return s
}

func (s *Shell) ready() {
	s.loading = false
	s.env.emit(EventReady, map[string]string{"path": s.path})
}

// Loading reports whether the splash is still showing.
func (s *Shell) Loading() bool { return s.loading }

// Dark reports whether the dark theme is active.
func (s *Shell) Dark() bool { return s.dark }

// ToggleTheme flips between dark and light and returns the new dark flag.
func (s *Shell) ToggleTheme() bool {
	s.dark = !s.dark
	return s.dark
}

// Path is the current route.
func (s *Shell) Path() string { return s.path }

// MenuOpen reports whether the mobile menu is expanded.
func (s *Shell) MenuOpen() bool { return s.menuOpen }

// ToggleMenu flips the mobile menu. The route never changes.
func (s *Shell) ToggleMenu() bool {
	s.menuOpen = !s.menuOpen
	return s.menuOpen
}

// SetPath records a completed navigation and closes the mobile menu.
func (s *Shell) SetPath(path string) {
	from := s.path
	s.path = path
	s.menuOpen = false
	s.env.emit(EventRouteChanged, map[string]string{"from": from, "to": path})
}

// Voice returns the floating voice panel.
func (s *Shell) Voice() *Voice { return s.voice }

// Nav renders the navigation bar with the item matching the current path
// exactly marked active.
func (s *Shell) Nav() []NavItem {
	routes := pages.Routes()
	items := make([]NavItem, len(routes))
	for i, r := range routes {
		items[i] = NavItem{Path: r.Path, Label: r.Label, Active: r.Path == s.path}
	}
	return items
}

// Render returns the shell view model.
func (s *Shell) Render() View {
	v := View{
		Theme:    "light",
		Loading:  s.loading,
		Path:     s.path,
		Nav:      s.Nav(),
		MenuOpen: s.menuOpen,
		Voice:    s.voice.Render(),
	}
	if s.dark {
		v.Theme = "dark"
	}
	if s.loading {
		splash := SplashScreen
		v.Splash = &splash
	}
	return v
}
