package models

// Note is a date-named note as returned by a lookup.
type Note struct {
	Date    string `json:"date"`
	Path    string `json:"path"`
	Content string `json:"content"`
}
