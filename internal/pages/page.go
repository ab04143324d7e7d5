// Package pages implements the eight LifeOS page models.
//
// Every page owns an independent in-memory model built from a private copy
// of the seed data when it mounts. Pages are driven exclusively from the
// session loop, so none of them synchronise internally. Delayed behaviour is
// scheduled on the mount Scope and therefore stops when the page unmounts.
package pages

import (
	"context"
	"log/slog"
	"time"

	"github.com/starford/lifeos/internal/collab"
	"github.com/starford/lifeos/internal/loop"
	"github.com/starford/lifeos/internal/seed"
)

// Event kinds emitted by pages.
const (
	EventDashboardTick   = "dashboard.tick"
	EventChatReply       = "chat.reply"
	EventChatTranscribed = "chat.transcribed"
	EventVaultUnlocked   = "vault.unlocked"
	EventVaultRejected   = "vault.rejected"
)

// Delays are the fixed latencies the pages simulate.
type Delays struct {
	Reply  time.Duration
	Listen time.Duration
	Unlock time.Duration
	Clock  time.Duration
}

// Env is handed to a page when it mounts.
type Env struct {
	// Ctx is cancelled when the page unmounts.
	Ctx    context.Context
	Scope  *loop.Scope
	Emit   func(kind string, data any)
	Seed   *seed.Data
	Delays Delays
	Collab collab.Set
	Logger *slog.Logger
	Now    func() time.Time
}

func (e *Env) emit(kind string, data any) {
	if e.Emit != nil {
		e.Emit(kind, data)
	}
}

// View is the rendered form of a page.
type View struct {
	Route    string `json:"route"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     any    `json:"body"`
}

// Page is the capability shared by every page variant.
type Page interface {
	Route() string
	Render() View
}

// Factory mounts a page.
type Factory func(Env) Page

// Route is a navigation entry.
type Route struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

type entry struct {
	Route
	factory Factory
}

var table = []entry{
	{Route{PathDashboard, "Dashboard"}, func(env Env) Page { return NewDashboard(env) }},
	{Route{PathBrain, "Smart Brain"}, func(env Env) Page { return NewBrain(env) }},
	{Route{PathChat, "ChatHub"}, func(env Env) Page { return NewChat(env) }},
	{Route{PathCreate, "CreateSpace"}, func(env Env) Page { return NewCreate(env) }},
	{Route{PathLearn, "SkillZone"}, func(env Env) Page { return NewLearn(env) }},
	{Route{PathPlanner, "Planner"}, func(env Env) Page { return NewPlanner(env) }},
	{Route{PathVault, "Privacy Vault"}, func(env Env) Page { return NewVault(env) }},
	{Route{PathFamily, "Family Hub"}, func(env Env) Page { return NewFamily(env) }},
}

// Route paths.
const (
	PathDashboard = "/"
	PathBrain     = "/brain"
	PathChat      = "/chat"
	PathCreate    = "/create"
	PathLearn     = "/learn"
	PathPlanner   = "/planner"
	PathVault     = "/vault"
	PathFamily    = "/family"
)

// Routes returns the navigation entries in display order.
func Routes() []Route {
	out := make([]Route, len(table))
	for i, e := range table {
		out[i] = e.Route
	}
	return out
}

// Lookup returns the factory for an exact path.
func Lookup(path string) (Factory, bool) {
	for _, e := range table {
		if e.Path == path {
			return e.factory, true
		}
	}
	return nil, false
}

func findIndex[T any](items []T, match func(T) bool) int {
	for i, it := range items {
		if match(it) {
			return i
		}
	}
	return -1
}
