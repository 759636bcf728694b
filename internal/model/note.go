package model

import "time"

// Note is a free-text note shared through the user's document.
type Note struct {
	ID     string    `json:"id"`
	Text   string    `json:"texto"`
	Author string    `json:"autor"`
	Date   time.Time `json:"fecha"`
}
