package models

import "time"

// GameState is the single per-player progress row. Saves overwrite it
// wholesale; there is no partial merge.
type GameState struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Money      int64     `json:"money"`
	FishingRod string    `json:"fishing_rod"`
	OwnedRods  []string  `json:"owned_rods"`
	LastSaved  time.Time `json:"last_saved"`
}
