package pages

import (
	"strings"

	"github.com/starford/lifeos/internal/models"
)

// CategoryAll selects every note.
const CategoryAll = "all"

// Note view modes.
const (
	ViewGrid = "grid"
	ViewList = "list"
)

// Brain is the Smart Brain notes page.
//
// The notes slice is replaced on every change and never mutated in place,
// so rendered views may share it.
type Brain struct {
	categories []models.NoteCategory
	notes      []models.Note
	suggestion string

	category string
	query    string
	viewMode string
}

// BrainView is the rendered notes body.
type BrainView struct {
	Categories []models.NoteCategory `json:"categories"`
	Category   string                `json:"category"`
	Query      string                `json:"query"`
	ViewMode   string                `json:"view_mode"`
	Notes      []models.Note         `json:"notes"`
	Empty      *Placeholder          `json:"empty,omitempty"`
	Suggestion string                `json:"suggestion"`
}

// Placeholder is rendered in place of an empty list.
type Placeholder struct {
	Title string `json:"title"`
	Hint  string `json:"hint"`
}

// NewBrain mounts the notes page.
func NewBrain(env Env) *Brain {
	return &Brain{
		categories: env.Seed.Brain.Categories,
		notes:      env.Seed.Brain.Notes,
		suggestion: env.Seed.Brain.Suggestion,
		category:   CategoryAll,
		viewMode:   ViewGrid,
	}
}

// Route implements Page.
func (b *Brain) Route() string { return PathBrain }

// SelectCategory switches the category filter. Unknown ids are ignored.
func (b *Brain) SelectCategory(id string) bool {
	if findIndex(b.categories, func(c models.NoteCategory) bool { return c.ID == id }) < 0 {
		return false
	}
	b.category = id
	return true
}

// SetQuery sets the free-text search.
func (b *Brain) SetQuery(q string) { b.query = q }

// SetViewMode switches between grid and list. Other values are ignored.
func (b *Brain) SetViewMode(mode string) bool {
	if mode != ViewGrid && mode != ViewList {
		return false
	}
	b.viewMode = mode
	return true
}

// ToggleStar flips the starred flag of one note. Unknown ids are a no-op.
func (b *Brain) ToggleStar(id int) bool {
	i := findIndex(b.notes, func(n models.Note) bool { return n.ID == id })
	if i < 0 {
		return false
	}
	next := make([]models.Note, len(b.notes))
	copy(next, b.notes)
	next[i].Starred = !next[i].Starred
	b.notes = next
	return true
}

// DeleteNote removes one note. Unknown ids are a no-op.
func (b *Brain) DeleteNote(id int) bool {
	i := findIndex(b.notes, func(n models.Note) bool { return n.ID == id })
	if i < 0 {
		return false
	}
	next := make([]models.Note, 0, len(b.notes)-1)
	next = append(next, b.notes[:i]...)
	next = append(next, b.notes[i+1:]...)
	b.notes = next
	return true
}

// Visible returns the notes passing both filters.
func (b *Brain) Visible() []models.Note {
	return ByQuery(ByCategory(b.notes, b.category), b.query)
}

// Render implements Page.
func (b *Brain) Render() View {
	visible := b.Visible()
	body := BrainView{
		Categories: b.categories,
		Category:   b.category,
		Query:      b.query,
		ViewMode:   b.viewMode,
		Notes:      visible,
		Suggestion: b.suggestion,
	}
	if len(visible) == 0 {
		hint := "Start creating your digital brain"
		if b.query != "" {
			hint = "Try a different search term"
		}
		body.Empty = &Placeholder{Title: "No notes found", Hint: hint}
	}
	return View{
		Route:    PathBrain,
		Title:    "Smart Brain",
		Subtitle: "Your intelligent note-taking and knowledge management system",
		Body:     body,
	}
}

// ByCategory keeps notes in category; CategoryAll keeps everything.
func ByCategory(notes []models.Note, category string) []models.Note {
	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if category == CategoryAll || n.Category == category {
			out = append(out, n)
		}
	}
	return out
}

// ByQuery keeps notes whose title or body contains q, ignoring case.
func ByQuery(notes []models.Note, q string) []models.Note {
	q = strings.ToLower(q)
	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Body), q) {
			out = append(out, n)
		}
	}
	return out
}
