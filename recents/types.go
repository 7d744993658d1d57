package recents

import "time"

// View is one item an operator opened from the console.
type View struct {
	Kind     string    `json:"kind"` // "client" or "hunt"
	ItemID   string    `json:"item_id"`
	Title    string    `json:"title"`
	ViewedAt time.Time `json:"viewed_at"`
}
