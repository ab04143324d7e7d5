// Package models defines the record types shown by LifeOS pages.
package models

// Note is a Smart Brain note.
type Note struct {
	ID       int      `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Body     string   `json:"body" yaml:"body"`
	Category string   `json:"category" yaml:"category"`
	Date     string   `json:"date" yaml:"date"`
	Starred  bool     `json:"starred" yaml:"starred"`
	Tags     []string `json:"tags" yaml:"tags"`
}

// NoteCategory is a sidebar entry. Count is display-only.
type NoteCategory struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
	Color string `json:"color" yaml:"color"`
}
