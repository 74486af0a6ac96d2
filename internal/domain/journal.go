package domain

import "time"

// JournalEntry es una anotación diaria del usuario sobre su toma y estado.
type JournalEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	EntryDate   Day       `json:"entry_date"`
	Mood        int       `json:"mood"` // escala 1-10
	DoseTaken   bool      `json:"dose_taken"`
	Notes       string    `json:"notes,omitempty"`
	SideEffects string    `json:"side_effects,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
