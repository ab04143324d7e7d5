package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/lifeos/internal/models"
	"github.com/starford/lifeos/internal/seed"
)

func titles(notes []models.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Title
	}
	return out
}

func TestBrainDefaults(t *testing.T) {
	b := NewBrain(Env{Seed: seed.Default()})
	body := b.Render().Body.(BrainView)

	assert.Equal(t, CategoryAll, body.Category)
	assert.Equal(t, ViewGrid, body.ViewMode)
	assert.Len(t, body.Notes, 4)
	assert.Nil(t, body.Empty)

	counts := map[string]int{}
	for _, c := range body.Categories {
		counts[c.ID] = c.Count
	}
	assert.Equal(t, map[string]int{"all": 24, "work": 12, "personal": 8, "ideas": 4}, counts)
}

func TestBrainIdeasCategory(t *testing.T) {
	for _, q := range []string{"", "app", "APP feature", "brainstorming"} {
		b := NewBrain(Env{Seed: seed.Default()})
		require.True(t, b.SelectCategory("ideas"))
		b.SetQuery(q)
		assert.Equal(t, []string{"App Feature Ideas"}, titles(b.Visible()), "query %q", q)
	}
}

func TestBrainQueryIsCaseInsensitiveOverTitleAndBody(t *testing.T) {
	b := NewBrain(Env{Seed: seed.Default()})

	b.SetQuery("WEEKEND")
	assert.Equal(t, []string{"Weekend Trip Planning"}, titles(b.Visible()))

	b.SetQuery("product launch")
	assert.Equal(t, []string{"Project Strategy Meeting"}, titles(b.Visible()))

	// Tags are not searched.
	b.SetQuery("strategy")
	assert.Equal(t, []string{"Project Strategy Meeting"}, titles(b.Visible()))
	b.SetQuery("development")
	assert.Empty(t, b.Visible())
}

func TestBrainFilterCommutes(t *testing.T) {
	notes := seed.Default().Brain.Notes
	for _, cat := range []string{"all", "work", "personal", "ideas", "missing"} {
		for _, q := range []string{"", "e", "ing", "ideas", "zzz"} {
			a := ByQuery(ByCategory(notes, cat), q)
			b := ByCategory(ByQuery(notes, q), cat)
			assert.Equal(t, titles(a), titles(b), "category %q query %q", cat, q)
		}
	}
}

func TestBrainEmptyPlaceholder(t *testing.T) {
	b := NewBrain(Env{Seed: seed.Default()})
	b.SetQuery("nothing matches this")

	body := b.Render().Body.(BrainView)
	require.NotNil(t, body.Empty)
	assert.Equal(t, "No notes found", body.Empty.Title)
	assert.Equal(t, "Try a different search term", body.Empty.Hint)
	assert.Empty(t, body.Notes)

	b.SetQuery("")
	for _, n := range seed.Default().Brain.Notes {
		b.DeleteNote(n.ID)
	}
	body = b.Render().Body.(BrainView)
	require.NotNil(t, body.Empty)
	assert.Equal(t, "Start creating your digital brain", body.Empty.Hint)
}

func TestBrainSelectCategoryRejectsUnknown(t *testing.T) {
	b := NewBrain(Env{Seed: seed.Default()})
	require.True(t, b.SelectCategory("work"))
	assert.False(t, b.SelectCategory("archive"))
	assert.Equal(t, "work", b.Render().Body.(BrainView).Category)
}

func TestBrainStarAndDelete(t *testing.T) {
	b := NewBrain(Env{Seed: seed.Default()})
	before := b.Visible()

	require.True(t, b.ToggleStar(2))
	after := b.Visible()
	assert.False(t, before[1].Starred, "earlier snapshot untouched")
	assert.True(t, after[1].Starred)

	assert.False(t, b.ToggleStar(99))
	assert.False(t, b.DeleteNote(99))

	require.True(t, b.DeleteNote(1))
	assert.Equal(t, []string{"Weekend Trip Planning", "App Feature Ideas", "Learning Goals 2024"}, titles(b.Visible()))
}

func TestBrainViewMode(t *testing.T) {
	b := NewBrain(Env{Seed: seed.Default()})
	assert.True(t, b.SetViewMode(ViewList))
	assert.False(t, b.SetViewMode("table"))
	assert.Equal(t, ViewList, b.Render().Body.(BrainView).ViewMode)
}
