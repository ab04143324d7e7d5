package pages

import "github.com/starford/lifeos/internal/models"

// ToolSelect is the default CreateSpace tool.
const ToolSelect = "select"

// Create is the CreateSpace design page. The canvas is always empty.
type Create struct {
	tools     []models.Tool
	palette   []string
	templates []models.Template
	assets    []string
	projects  []string
	tool      string
}

// CreateView is the rendered canvas page.
type CreateView struct {
	Tools     []models.Tool     `json:"tools"`
	Tool      string            `json:"tool"`
	Palette   []string          `json:"palette"`
	Templates []models.Template `json:"templates"`
	Assets    []string          `json:"assets"`
	Projects  []string          `json:"projects"`
	Canvas    []any             `json:"canvas"`
	Empty     *Placeholder      `json:"empty,omitempty"`
}

// NewCreate mounts the canvas with the select tool active.
func NewCreate(env Env) *Create {
	s := env.Seed.Create
	return &Create{
		tools:     s.Tools,
		palette:   s.Palette,
		templates: s.Templates,
		assets:    s.Assets,
		projects:  s.Projects,
		tool:      ToolSelect,
	}
}

// Route implements Page.
func (c *Create) Route() string { return PathCreate }

// SelectTool picks the active tool. Unknown ids are ignored.
func (c *Create) SelectTool(id string) bool {
	if findIndex(c.tools, func(t models.Tool) bool { return t.ID == id }) < 0 {
		return false
	}
	c.tool = id
	return true
}

// Render implements Page.
func (c *Create) Render() View {
	return View{
		Route:    PathCreate,
		Title:    "CreateSpace",
		Subtitle: "Professional design studio with AI-powered creativity tools",
		Body: CreateView{
			Tools:     c.tools,
			Tool:      c.tool,
			Palette:   c.palette,
			Templates: c.templates,
			Assets:    c.assets,
			Projects:  c.projects,
			Canvas:    []any{},
			Empty: &Placeholder{
				Title: "Start Creating",
				Hint:  "Select a tool from the sidebar or choose a template to begin",
			},
		},
	}
}
