package pages

import (
	"time"

	"github.com/starford/lifeos/internal/models"
	"github.com/starford/lifeos/internal/seed"
)

// Dashboard is the landing page with a live clock.
type Dashboard struct {
	env  Env
	data seed.Dashboard
	now  time.Time
}

// DashboardView is the rendered dashboard body.
type DashboardView struct {
	Greeting string          `json:"greeting"`
	Time     time.Time       `json:"time"`
	Weather  models.Weather  `json:"weather"`
	Stats    []models.Stat   `json:"stats"`
	Agenda   []models.Agenda `json:"agenda"`
	Summary  string          `json:"summary"`
}

// NewDashboard mounts the dashboard and starts its clock.
func NewDashboard(env Env) *Dashboard {
	d := &Dashboard{env: env, data: env.Seed.Dashboard, now: env.Now()}
	if env.Delays.Clock > 0 {
		env.Scope.Every(env.Delays.Clock, d.tick)
	}
	return d
}

func (d *Dashboard) tick() {
	d.now = d.env.Now()
	d.env.emit(EventDashboardTick, map[string]string{"time": d.now.Format(time.TimeOnly)})
}

// Route implements Page.
func (d *Dashboard) Route() string { return PathDashboard }

// Now returns the clock value last rendered.
func (d *Dashboard) Now() time.Time { return d.now }

// Render implements Page.
func (d *Dashboard) Render() View {
	return View{
		Route:    PathDashboard,
		Title:    "Good Morning, Alex",
		Subtitle: "Ready to conquer another productive day?",
		Body: DashboardView{
			Greeting: "Good Morning, Alex",
			Time:     d.now,
			Weather:  d.data.Weather,
			Stats:    d.data.Stats,
			Agenda:   d.data.Agenda,
			Summary:  d.data.Summary,
		},
	}
}
