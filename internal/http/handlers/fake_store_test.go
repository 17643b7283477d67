package handlers

import (
	"context"
	"slices"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/castline/fishing-be/internal/auth"
	"github.com/castline/fishing-be/internal/models"
	"github.com/castline/fishing-be/internal/storage"
)

const testSecret = "test-secret"

// fakeStore is an in-memory storage.Store for handler tests.
type fakeStore struct {
	users      map[string]models.User
	games      map[int64]models.GameState
	fish       []models.InventoryItem
	nextUserID int64
	nextFishID int64
	clock      time.Time
}

var _ storage.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: make(map[string]models.User),
		games: make(map[int64]models.GameState),
		clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp so catch order is unambiguous.
func (f *fakeStore) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeStore) CreateUser(_ context.Context, username, passwordHash string) (models.User, error) {
	if _, ok := f.users[username]; ok {
		return models.User{}, storage.ErrAlreadyExists
	}
	f.nextUserID++
	user := models.User{
		ID:           f.nextUserID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    f.tick(),
	}
	f.users[username] = user
	f.games[user.ID] = models.GameState{
		ID:         user.ID,
		UserID:     user.ID,
		Money:      0,
		FishingRod: models.DefaultRod,
		OwnedRods:  []string{models.DefaultRod},
		LastSaved:  f.clock,
	}
	return user, nil
}

func (f *fakeStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	user, ok := f.users[username]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (f *fakeStore) GameStateByUser(_ context.Context, userID int64) (models.GameState, error) {
	gs, ok := f.games[userID]
	if !ok {
		return models.GameState{}, storage.ErrNotFound
	}
	return gs, nil
}

func (f *fakeStore) SaveGameState(_ context.Context, userID int64, money int64, fishingRod string, ownedRods []string) error {
	gs, ok := f.games[userID]
	if !ok {
		return storage.ErrNotFound
	}
	gs.Money = money
	gs.FishingRod = fishingRod
	gs.OwnedRods = slices.Clone(ownedRods)
	gs.LastSaved = f.tick()
	f.games[userID] = gs
	return nil
}

func (f *fakeStore) InventoryByUser(_ context.Context, userID int64) ([]models.InventoryItem, error) {
	items := []models.InventoryItem{}
	for _, item := range f.fish {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	slices.SortFunc(items, func(a, b models.InventoryItem) int {
		return b.CaughtAt.Compare(a.CaughtAt)
	})
	return items, nil
}

func (f *fakeStore) AddFish(_ context.Context, userID int64, fish models.CaughtFish) error {
	f.nextFishID++
	f.fish = append(f.fish, models.InventoryItem{
		ID:       f.nextFishID,
		UserID:   userID,
		FishName: fish.Name,
		Rarity:   fish.Rarity,
		Weight:   fish.Weight,
		Price:    fish.Price,
		Colour:   fish.Colour,
		CaughtAt: f.tick(),
	})
	return nil
}

func (f *fakeStore) SetFavourite(_ context.Context, fishID, userID int64, favourite bool) error {
	for i, item := range f.fish {
		if item.ID == fishID && item.UserID == userID {
			f.fish[i].Favourite = favourite
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) SellFish(_ context.Context, userID int64) (int64, error) {
	var kept []models.InventoryItem
	var sold int64
	for _, item := range f.fish {
		if item.UserID == userID && !item.Favourite {
			sold++
			continue
		}
		kept = append(kept, item)
	}
	f.fish = kept
	return sold, nil
}

// newTestRouter wires the real handlers against the fake store.
func newTestRouter(store storage.Store) (*mux.Router, *auth.TokenManager) {
	tokens := auth.NewTokenManager(testSecret, "fishing-backend-test", time.Hour)
	log := zerolog.Nop()

	router := mux.NewRouter()
	NewAuthHandler(store, tokens, log).Register(router)
	NewGameHandler(store, store, log).Register(router, tokens)
	NewHealthHandler(time.Now()).Register(router)
	return router, tokens
}
