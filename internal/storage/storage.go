package storage

import (
	"context"
	"errors"

	"github.com/castline/fishing-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures the account operations needed by the auth handlers.
type UserStore interface {
	// CreateUser inserts the credential row and the default game-state row
	// as one atomic unit.
	CreateUser(ctx context.Context, username, passwordHash string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
}

// GameStore persists per-player progress.
type GameStore interface {
	GameStateByUser(ctx context.Context, userID int64) (models.GameState, error)
	// SaveGameState overwrites the player's row in full and returns
	// ErrNotFound when no row exists for that player.
	SaveGameState(ctx context.Context, userID int64, money int64, fishingRod string, ownedRods []string) error
}

// InventoryStore persists caught fish.
type InventoryStore interface {
	InventoryByUser(ctx context.Context, userID int64) ([]models.InventoryItem, error)
	AddFish(ctx context.Context, userID int64, fish models.CaughtFish) error
	// SetFavourite flips the flag on a fish owned by userID and returns
	// ErrNotFound when the row is missing or owned by someone else.
	SetFavourite(ctx context.Context, fishID, userID int64, favourite bool) error
	// SellFish deletes every non-favourited fish for the player and
	// reports how many rows went away.
	SellFish(ctx context.Context, userID int64) (int64, error)
}

// Store is the full persistence surface used by the server.
type Store interface {
	UserStore
	GameStore
	InventoryStore
}
