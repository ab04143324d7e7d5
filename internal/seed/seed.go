// Package seed provides the fixed records LifeOS pages start from.
//
// The default document is embedded in the binary. An override file can be
// configured and hot-reloaded; pages take a deep copy when they mount, so a
// reload never reaches a page that is already mounted.
package seed

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"
	"slices"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"github.com/starford/lifeos/internal/models"
)

//go:embed lifeos.yaml
var defaultDocument []byte

// Data is the complete seed document.
type Data struct {
	Dashboard Dashboard `yaml:"dashboard"`
	Brain     Brain     `yaml:"brain"`
	Chat      Chat      `yaml:"chat"`
	Create    Create    `yaml:"create"`
	Learn     Learn     `yaml:"learn"`
	Planner   Planner   `yaml:"planner"`
	Vault     Vault     `yaml:"vault"`
	Family    Family    `yaml:"family"`
	Voice     Voice     `yaml:"voice"`
}

// Dashboard seeds the overview page.
type Dashboard struct {
	Weather models.Weather  `yaml:"weather"`
	Stats   []models.Stat   `yaml:"stats"`
	Agenda  []models.Agenda `yaml:"agenda"`
	Summary string          `yaml:"summary"`
}

// Brain seeds the notes page.
type Brain struct {
	Categories []models.NoteCategory `yaml:"categories"`
	Notes      []models.Note         `yaml:"notes"`
	Suggestion string                `yaml:"suggestion"`
}

// Chat seeds the messaging page.
type Chat struct {
	Greeting  string   `yaml:"greeting"`
	Languages []string `yaml:"languages"`
	Rooms     []string `yaml:"rooms"`
}

// Create seeds the design canvas page.
type Create struct {
	Tools     []models.Tool     `yaml:"tools"`
	Palette   []string          `yaml:"palette"`
	Templates []models.Template `yaml:"templates"`
	Assets    []string          `yaml:"assets"`
	Projects  []string          `yaml:"projects"`
}

// Learn seeds the SkillZone page.
type Learn struct {
	Level        int                  `yaml:"level"`
	XP           int                  `yaml:"xp"`
	Streak       int                  `yaml:"streak"`
	Completed    int                  `yaml:"completed"`
	Courses      []models.Course      `yaml:"courses"`
	Achievements []models.Achievement `yaml:"achievements"`
	Tutor        string               `yaml:"tutor"`
}

// Planner seeds the planner page.
type Planner struct {
	Energy     int           `yaml:"energy"`
	Tasks      []models.Task `yaml:"tasks"`
	Suggestion string        `yaml:"suggestion"`
}

// Vault seeds the Privacy Vault.
type Vault struct {
	Folders []models.VaultFolder `yaml:"folders"`
	Files   []models.FileRecord  `yaml:"files"`
}

// Family seeds the Family Hub.
type Family struct {
	Members  []models.FamilyMember `yaml:"members"`
	Photos   []models.Photo        `yaml:"photos"`
	Events   []models.FamilyEvent  `yaml:"events"`
	Memories []models.Memory       `yaml:"memories"`
}

// Voice seeds the floating voice panel.
type Voice struct {
	Commands []string `yaml:"commands"`
}

// Parse decodes a seed document.
func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("seed: parse: %w", err)
	}
	if len(d.Brain.Categories) == 0 {
		return nil, fmt.Errorf("seed: brain.categories is empty")
	}
	return &d, nil
}

// Default returns the embedded seed document.
func Default() *Data {
	d, err := Parse(defaultDocument)
	if err != nil {
		panic(err)
	}
	return d
}

// Clone returns a deep copy so the receiver can be shared safely.
func (d *Data) Clone() *Data {
	c := *d
	c.Dashboard.Stats = slices.Clone(d.Dashboard.Stats)
	c.Dashboard.Agenda = slices.Clone(d.Dashboard.Agenda)
	c.Brain.Categories = slices.Clone(d.Brain.Categories)
	c.Brain.Notes = make([]models.Note, len(d.Brain.Notes))
	for i, n := range d.Brain.Notes {
		n.Tags = slices.Clone(n.Tags)
		c.Brain.Notes[i] = n
	}
	c.Chat.Languages = slices.Clone(d.Chat.Languages)
	c.Chat.Rooms = slices.Clone(d.Chat.Rooms)
	c.Create.Tools = slices.Clone(d.Create.Tools)
	c.Create.Palette = slices.Clone(d.Create.Palette)
	c.Create.Templates = slices.Clone(d.Create.Templates)
	c.Create.Assets = slices.Clone(d.Create.Assets)
	c.Create.Projects = slices.Clone(d.Create.Projects)
	c.Learn.Courses = slices.Clone(d.Learn.Courses)
	c.Learn.Achievements = slices.Clone(d.Learn.Achievements)
	c.Planner.Tasks = slices.Clone(d.Planner.Tasks)
	c.Vault.Folders = slices.Clone(d.Vault.Folders)
	c.Vault.Files = slices.Clone(d.Vault.Files)
	c.Family.Members = slices.Clone(d.Family.Members)
	c.Family.Photos = slices.Clone(d.Family.Photos)
	c.Family.Events = slices.Clone(d.Family.Events)
	c.Family.Memories = slices.Clone(d.Family.Memories)
	c.Voice.Commands = slices.Clone(d.Voice.Commands)
	return &c
}

func digest(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Store holds the current seed document.
type Store struct {
	path    string
	current atomic.Pointer[Data]
	version atomic.Pointer[string]
}

// NewStore loads path, or the embedded document when path is empty.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if path == "" {
		s.set(Default(), digest(defaultDocument))
		return s, nil
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) set(d *Data, version string) {
	s.current.Store(d)
	s.version.Store(&version)
}

// Snapshot returns a private deep copy of the current document.
func (s *Store) Snapshot() *Data {
	return s.current.Load().Clone()
}

// Path returns the override file path, empty for the embedded document.
func (s *Store) Path() string {
	return s.path
}

// Version returns the SHA-256 of the document currently served.
func (s *Store) Version() string {
	if v := s.version.Load(); v != nil {
		return *v
	}
	return ""
}

// Reload re-reads the override file. A failed reload keeps the previous data
// and a byte-identical file is not parsed again.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("seed: read %s: %w", s.path, err)
	}
	sum := digest(raw)
	if sum == s.Version() {
		return nil
	}
	d, err := Parse(raw)
	if err != nil {
		return err
	}
	s.set(d, sum)
	return nil
}
