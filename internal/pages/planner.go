package pages

import (
	"time"

	"github.com/starford/lifeos/internal/models"
)

// Planner view modes. The mode is cosmetic; nothing reads it.
const (
	ModeDay   = "day"
	ModeWeek  = "week"
	ModeMonth = "month"
)

// Planner is the day planner page.
type Planner struct {
	tasks      []models.Task
	energy     int
	suggestion string
	viewMode   string
	date       time.Time
}

// PlannerView is the rendered planner body.
type PlannerView struct {
	ViewMode   string        `json:"view_mode"`
	Date       string        `json:"date"`
	Month      string        `json:"month"`
	Tasks      []models.Task `json:"tasks"`
	Completed  int           `json:"completed"`
	Total      int           `json:"total"`
	Energy     int           `json:"energy"`
	Suggestion string        `json:"suggestion"`
}

// NewPlanner mounts the planner on today's date in day mode.
func NewPlanner(env Env) *Planner {
	return &Planner{
		tasks:      env.Seed.Planner.Tasks,
		energy:     env.Seed.Planner.Energy,
		suggestion: env.Seed.Planner.Suggestion,
		viewMode:   ModeDay,
		date:       env.Now(),
	}
}

// Route implements Page.
func (p *Planner) Route() string { return PathPlanner }

// Tasks returns the current task list. The slice is never mutated after it
// is returned.
func (p *Planner) Tasks() []models.Task { return p.tasks }

// ToggleTask flips the completed flag of the task with id. The list is
// rebuilt so earlier snapshots keep their values. Unknown ids are a no-op.
func (p *Planner) ToggleTask(id int) bool {
	if findIndex(p.tasks, func(t models.Task) bool { return t.ID == id }) < 0 {
		return false
	}
	next := make([]models.Task, len(p.tasks))
	for i, t := range p.tasks {
		if t.ID == id {
			t.Completed = !t.Completed
		}
		next[i] = t
	}
	p.tasks = next
	return true
}

// SetViewMode selects day, week or month. Other values are ignored.
func (p *Planner) SetViewMode(mode string) bool {
	switch mode {
	case ModeDay, ModeWeek, ModeMonth:
		p.viewMode = mode
		return true
	}
	return false
}

// SelectDate moves the calendar to date.
func (p *Planner) SelectDate(date time.Time) { p.date = date }

// Render implements Page.
func (p *Planner) Render() View {
	done := 0
	for _, t := range p.tasks {
		if t.Completed {
			done++
		}
	}
	return View{
		Route:    PathPlanner,
		Title:    "Smart Planner",
		Subtitle: "AI-powered scheduling with 3D calendar and energy tracking",
		Body: PlannerView{
			ViewMode:   p.viewMode,
			Date:       p.date.Format(time.DateOnly),
			Month:      p.date.Format("January 2006"),
			Tasks:      p.tasks,
			Completed:  done,
			Total:      len(p.tasks),
			Energy:     p.energy,
			Suggestion: p.suggestion,
		},
	}
}
