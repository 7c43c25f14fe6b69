package models

import "time"

// Category is a per-user label for prompts. Names are unique per owner.
// Deleting a category detaches its prompts rather than deleting them.
type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
