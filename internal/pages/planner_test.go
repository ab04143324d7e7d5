package pages

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/lifeos/internal/seed"
)

func newTestPlanner() *Planner {
	return NewPlanner(Env{
		Seed: seed.Default(),
		Now:  func() time.Time { return time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC) },
	})
}

func TestToggleTaskFlipsOnlyTarget(t *testing.T) {
	p := newTestPlanner()
	before := p.Tasks()

	require.True(t, p.ToggleTask(2))
	after := p.Tasks()

	require.Len(t, after, len(before))
	for i := range before {
		if before[i].ID == 2 {
			assert.Equal(t, !before[i].Completed, after[i].Completed)
			want := before[i]
			want.Completed = after[i].Completed
			assert.Equal(t, want, after[i], "only completed changes")
			continue
		}
		assert.Equal(t, before[i], after[i])
	}
	assert.False(t, before[1].Completed, "earlier snapshot is not mutated")
}

func TestToggleTaskTwiceRestores(t *testing.T) {
	p := newTestPlanner()
	original := p.Tasks()

	for _, id := range []int{1, 4} {
		p.ToggleTask(id)
		p.ToggleTask(id)
	}
	assert.Equal(t, original, p.Tasks())
}

func TestToggleTaskUnknownIsNoop(t *testing.T) {
	p := newTestPlanner()
	before := p.Tasks()
	assert.False(t, p.ToggleTask(42))
	assert.Equal(t, before, p.Tasks())
}

func TestPlannerRender(t *testing.T) {
	p := newTestPlanner()
	body := p.Render().Body.(PlannerView)
	assert.Equal(t, ModeDay, body.ViewMode)
	assert.Equal(t, 1, body.Completed)
	assert.Equal(t, 4, body.Total)
	assert.Equal(t, 85, body.Energy)
	assert.Equal(t, "2024-01-15", body.Date)
	assert.Equal(t, "January 2024", body.Month)

	p.ToggleTask(1)
	assert.True(t, p.SetViewMode(ModeMonth))
	assert.False(t, p.SetViewMode("year"))
	p.SelectDate(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))

	body = p.Render().Body.(PlannerView)
	assert.Equal(t, 2, body.Completed)
	assert.Equal(t, ModeMonth, body.ViewMode)
	assert.Equal(t, "March 2024", body.Month)
}
