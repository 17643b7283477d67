package models

import "time"

// InventoryItem is one caught fish. Rows are append-only except for the
// favourite flag; a sell deletes every non-favourited row for the player.
type InventoryItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	FishName  string    `json:"fish_name"`
	Rarity    string    `json:"rarity"`
	Weight    float64   `json:"weight"`
	Price     int64     `json:"price"`
	Colour    string    `json:"colour"`
	Favourite bool      `json:"favourite"`
	CaughtAt  time.Time `json:"caught_at"`
}

// CaughtFish is the client-supplied descriptor of a new catch.
type CaughtFish struct {
	Name   string
	Rarity string
	Weight float64
	Price  int64
	Colour string
}
