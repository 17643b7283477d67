package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/castline/fishing-be/internal/auth"
	"github.com/castline/fishing-be/internal/http/respond"
	"github.com/castline/fishing-be/internal/middleware"
	"github.com/castline/fishing-be/internal/models"
	"github.com/castline/fishing-be/internal/models/dto"
	"github.com/castline/fishing-be/internal/storage"
)

// GameHandler owns the player-scoped progress and inventory endpoints.
// Every route requires a Bearer token; the body's userId must match the
// token, so a player can only mutate their own data.
type GameHandler struct {
	games     storage.GameStore
	inventory storage.InventoryStore
	log       zerolog.Logger
}

// NewGameHandler constructs the handler.
func NewGameHandler(games storage.GameStore, inventory storage.InventoryStore, log zerolog.Logger) *GameHandler {
	return &GameHandler{games: games, inventory: inventory, log: log}
}

// Register attaches the game routes behind the auth middleware.
func (h *GameHandler) Register(r *mux.Router, tokens *auth.TokenManager) {
	r.HandleFunc("/api/save-game", middleware.RequireAuth(tokens, h.handleSaveGame)).Methods(http.MethodPost)
	r.HandleFunc("/api/add-fish", middleware.RequireAuth(tokens, h.handleAddFish)).Methods(http.MethodPost)
	r.HandleFunc("/api/toggle-favourite", middleware.RequireAuth(tokens, h.handleToggleFavourite)).Methods(http.MethodPost)
	r.HandleFunc("/api/sell-fish", middleware.RequireAuth(tokens, h.handleSellFish)).Methods(http.MethodPost)
}

func (h *GameHandler) handleSaveGame(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if !authorizedFor(w, r, req.UserID) {
		return
	}

	rods := normalizeOwnedRods(req.OwnedRods, req.FishingRod)
	err := h.games.SaveGameState(r.Context(), req.UserID, req.Money, req.FishingRod, rods)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "game data not found")
			return
		}
		h.log.Error().Err(err).Int64("user_id", req.UserID).Msg("save game")
		respond.Error(w, http.StatusInternalServerError, "failed to save game")
		return
	}

	respond.JSON(w, http.StatusOK, dto.Ack{Success: true})
}

func (h *GameHandler) handleAddFish(w http.ResponseWriter, r *http.Request) {
	var req dto.AddFishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if !authorizedFor(w, r, req.UserID) {
		return
	}

	fish := models.CaughtFish{
		Name:   req.Fish.Name,
		Rarity: req.Fish.Rarity,
		Weight: req.Fish.Weight,
		Price:  req.Fish.Price,
		Colour: req.Fish.Color,
	}
	if err := h.inventory.AddFish(r.Context(), req.UserID, fish); err != nil {
		h.log.Error().Err(err).Int64("user_id", req.UserID).Msg("add fish")
		respond.Error(w, http.StatusInternalServerError, "failed to add fish")
		return
	}

	respond.JSON(w, http.StatusOK, dto.Ack{Success: true})
}

func (h *GameHandler) handleToggleFavourite(w http.ResponseWriter, r *http.Request) {
	var req dto.ToggleFavouriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	playerID := middleware.PlayerID(r.Context())
	err := h.inventory.SetFavourite(r.Context(), req.FishID, playerID, req.Favourite)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "fish not found")
			return
		}
		h.log.Error().Err(err).Int64("fish_id", req.FishID).Msg("toggle favourite")
		respond.Error(w, http.StatusInternalServerError, "failed to update favourite")
		return
	}

	respond.JSON(w, http.StatusOK, dto.Ack{Success: true})
}

func (h *GameHandler) handleSellFish(w http.ResponseWriter, r *http.Request) {
	var req dto.SellFishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if !authorizedFor(w, r, req.UserID) {
		return
	}

	sold, err := h.inventory.SellFish(r.Context(), req.UserID)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", req.UserID).Msg("sell fish")
		respond.Error(w, http.StatusInternalServerError, "failed to sell fish")
		return
	}

	respond.JSON(w, http.StatusOK, dto.SellFishResponse{Success: true, SoldCount: sold})
}

// authorizedFor rejects a request whose body targets a different player than
// the token identifies. Writes the response itself and reports whether the
// handler may continue.
func authorizedFor(w http.ResponseWriter, r *http.Request, userID int64) bool {
	if middleware.PlayerID(r.Context()) != userID {
		respond.Error(w, http.StatusForbidden, "userId does not match authenticated player")
		return false
	}
	return true
}

// normalizeOwnedRods guarantees the owned set always contains the default
// rod and the currently equipped one.
func normalizeOwnedRods(rods []string, equipped string) []string {
	out := make([]string, 0, len(rods)+2)
	for _, rod := range rods {
		if rod != "" && !slices.Contains(out, rod) {
			out = append(out, rod)
		}
	}
	if !slices.Contains(out, models.DefaultRod) {
		out = append(out, models.DefaultRod)
	}
	if equipped != "" && !slices.Contains(out, equipped) {
		out = append(out, equipped)
	}
	return out
}
