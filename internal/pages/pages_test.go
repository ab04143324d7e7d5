package pages

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/lifeos/internal/seed"
)

func TestRoutesOrderAndLookup(t *testing.T) {
	routes := Routes()
	paths := make([]string, len(routes))
	for i, r := range routes {
		paths[i] = r.Path
	}
	assert.Equal(t, []string{"/", "/brain", "/chat", "/create", "/learn", "/planner", "/vault", "/family"}, paths)
	assert.Equal(t, "Privacy Vault", routes[6].Label)

	for _, r := range routes {
		f, ok := Lookup(r.Path)
		require.True(t, ok, r.Path)
		h := newHarness(t)
		var route string
		h.do(func() { route = f(h.env).Route() })
		assert.Equal(t, r.Path, route)
	}

	_, ok := Lookup("/brain/")
	assert.False(t, ok, "lookup is exact")
	_, ok = Lookup("/settings")
	assert.False(t, ok)
}

func TestDashboardClockTicks(t *testing.T) {
	h := newHarness(t)
	h.do(func() { NewDashboard(h.env) })
	ev := h.waitEvent(EventDashboardTick)
	assert.Contains(t, ev.data, "time")

	h.unmount()
	// Drain anything queued before the unmount.
	for len(h.events) > 0 {
		<-h.events
	}
	h.noEvent(EventDashboardTick, 30*time.Millisecond)
}

func TestLearnSelectCourse(t *testing.T) {
	l := NewLearn(Env{Seed: seed.Default()})
	body := l.Render().Body.(LearnView)
	assert.Nil(t, body.Selected)
	assert.Equal(t, LearnProfile{Level: 7, XP: 2450, Streak: 12, Completed: 3}, body.Profile)

	assert.True(t, l.SelectCourse(3))
	assert.False(t, l.SelectCourse(30))
	body = l.Render().Body.(LearnView)
	require.NotNil(t, body.Selected)
	assert.Equal(t, 3, *body.Selected)
	assert.Equal(t, 90, body.Courses[2].Progress, "progress never changes")
}

func TestFamilyTabsAndMembers(t *testing.T) {
	f := NewFamily(Env{Seed: seed.Default()})
	body := f.Render().Body.(FamilyView)
	assert.Equal(t, TabOverview, body.Tab)
	assert.Len(t, body.Events, 4)
	assert.Nil(t, body.Empty)

	assert.True(t, f.SelectMember(2))
	assert.False(t, f.SelectMember(9))
	assert.True(t, f.SelectTab(TabPhotos))
	assert.False(t, f.SelectTab("chores"))

	body = f.Render().Body.(FamilyView)
	require.NotNil(t, body.Selected)
	assert.Equal(t, 2, *body.Selected)
	require.NotNil(t, body.Empty)
	assert.Empty(t, body.Photos)
}

func TestCreateSelectTool(t *testing.T) {
	c := NewCreate(Env{Seed: seed.Default()})
	assert.Equal(t, ToolSelect, c.Render().Body.(CreateView).Tool)
	assert.True(t, c.SelectTool("circle"))
	assert.False(t, c.SelectTool("lasso"))

	body := c.Render().Body.(CreateView)
	assert.Equal(t, "circle", body.Tool)
	assert.Empty(t, body.Canvas)
	assert.Len(t, body.Palette, 12)
}
