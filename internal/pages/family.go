package pages

import (
	"slices"

	"github.com/starford/lifeos/internal/models"
)

// Family Hub tabs.
const (
	TabOverview = "overview"
	TabPhotos   = "photos"
	TabEvents   = "events"
	TabMessages = "messages"
)

// FamilyTabs lists the tabs in display order.
var FamilyTabs = []string{TabOverview, TabPhotos, TabEvents, TabMessages}

// Family is the Family Hub page.
type Family struct {
	members  []models.FamilyMember
	photos   []models.Photo
	events   []models.FamilyEvent
	memories []models.Memory

	selected *int
	tab      string
}

// FamilyView is the rendered Family Hub body. Only the overview tab carries
// content; the others render a placeholder.
type FamilyView struct {
	Members  []models.FamilyMember `json:"members"`
	Selected *int                  `json:"selected"`
	Tab      string                `json:"tab"`
	Tabs     []string              `json:"tabs"`
	Photos   []models.Photo        `json:"photos,omitempty"`
	Events   []models.FamilyEvent  `json:"events,omitempty"`
	Memories []models.Memory       `json:"memories,omitempty"`
	Empty    *Placeholder          `json:"empty,omitempty"`
}

// NewFamily mounts the Family Hub on the overview tab.
func NewFamily(env Env) *Family {
	s := env.Seed.Family
	return &Family{
		members:  s.Members,
		photos:   s.Photos,
		events:   s.Events,
		memories: s.Memories,
		tab:      TabOverview,
	}
}

// Route implements Page.
func (f *Family) Route() string { return PathFamily }

// SelectMember emphasises a member card. Unknown ids are ignored.
func (f *Family) SelectMember(id int) bool {
	if findIndex(f.members, func(m models.FamilyMember) bool { return m.ID == id }) < 0 {
		return false
	}
	f.selected = &id
	return true
}

// SelectTab switches the content tab. Unknown tabs are ignored.
func (f *Family) SelectTab(tab string) bool {
	if !slices.Contains(FamilyTabs, tab) {
		return false
	}
	f.tab = tab
	return true
}

// Render implements Page.
func (f *Family) Render() View {
	body := FamilyView{
		Members:  f.members,
		Selected: f.selected,
		Tab:      f.tab,
		Tabs:     FamilyTabs,
	}
	if f.tab == TabOverview {
		body.Photos = f.photos
		body.Events = f.events
		body.Memories = f.memories
	} else {
		body.Empty = &Placeholder{
			Title: "Coming Soon",
			Hint:  "This section is under development. Stay tuned for amazing family features!",
		}
	}
	return View{
		Route:    PathFamily,
		Title:    "Family Hub",
		Subtitle: "Stay connected with your loved ones in your virtual family room",
		Body:     body,
	}
}
