package models

import "time"

// Sender identifies who wrote a chat message.
type Sender string

// Message senders.
const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is a ChatHub message.
type Message struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is a planner entry.
type Task struct {
	ID          int    `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description"`
	Time        string `json:"time" yaml:"time"`
	Priority    string `json:"priority" yaml:"priority"`
	Completed   bool   `json:"completed" yaml:"completed"`
	Category    string `json:"category" yaml:"category"`
	Location    string `json:"location,omitempty" yaml:"location"`
}

// FileRecord is a vault file listing. Nothing is stored or encrypted.
type FileRecord struct {
	ID        int    `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Type      string `json:"type" yaml:"type"`
	Size      string `json:"size" yaml:"size"`
	Date      string `json:"date" yaml:"date"`
	Encrypted bool   `json:"encrypted" yaml:"encrypted"`
}

// VaultFolder is a vault sidebar folder.
type VaultFolder struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// Course is a SkillZone course. Progress is never changed by user actions.
type Course struct {
	ID         int     `json:"id" yaml:"id"`
	Title      string  `json:"title" yaml:"title"`
	Category   string  `json:"category" yaml:"category"`
	Progress   int     `json:"progress" yaml:"progress"`
	Duration   string  `json:"duration" yaml:"duration"`
	Difficulty string  `json:"difficulty" yaml:"difficulty"`
	Instructor string  `json:"instructor" yaml:"instructor"`
	Rating     float64 `json:"rating" yaml:"rating"`
	Students   int     `json:"students" yaml:"students"`
}

// Achievement is a SkillZone badge.
type Achievement struct {
	ID     int    `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Earned bool   `json:"earned" yaml:"earned"`
}

// FamilyMember is a Family Hub member card.
type FamilyMember struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Role     string `json:"role" yaml:"role"`
	Status   string `json:"status" yaml:"status"`
	Location string `json:"location" yaml:"location"`
	LastSeen string `json:"last_seen" yaml:"last_seen"`
}

// FamilyEvent is an upcoming family event.
type FamilyEvent struct {
	ID    int    `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Date  string `json:"date" yaml:"date"`
	Type  string `json:"type" yaml:"type"`
}

// Photo is a Family Hub photo tile.
type Photo struct {
	ID    int    `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
	Date  string `json:"date" yaml:"date"`
}

// Memory is a shared family memory.
type Memory struct {
	ID       int    `json:"id" yaml:"id"`
	Type     string `json:"type" yaml:"type"`
	Title    string `json:"title" yaml:"title"`
	Likes    int    `json:"likes" yaml:"likes"`
	Comments int    `json:"comments" yaml:"comments"`
}

// Tool is a CreateSpace canvas tool.
type Tool struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// Template is a CreateSpace design template.
type Template struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Stat is a labelled dashboard figure.
type Stat struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Agenda is a dashboard upcoming-task line.
type Agenda struct {
	Title    string `json:"title" yaml:"title"`
	Time     string `json:"time" yaml:"time"`
	Priority string `json:"priority" yaml:"priority"`
}

// Weather is the dashboard weather card.
type Weather struct {
	Temp      int    `json:"temp" yaml:"temp"`
	Condition string `json:"condition" yaml:"condition"`
	Location  string `json:"location" yaml:"location"`
}
