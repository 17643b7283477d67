package dto

import "github.com/castline/fishing-be/internal/models"

type RegisterResponse struct {
	Success  bool   `json:"success"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

type LoginResponse struct {
	Success   bool                   `json:"success"`
	UserID    int64                  `json:"userId"`
	Username  string                 `json:"username"`
	Token     string                 `json:"token"`
	GameData  *models.GameState      `json:"gameData"`
	Inventory []models.InventoryItem `json:"inventory"`
}

// Ack is the bare acknowledgment returned by the write-only endpoints.
type Ack struct {
	Success bool `json:"success"`
}

type SellFishResponse struct {
	Success   bool  `json:"success"`
	SoldCount int64 `json:"soldCount"`
}
