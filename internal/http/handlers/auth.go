package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/castline/fishing-be/internal/auth"
	"github.com/castline/fishing-be/internal/http/respond"
	"github.com/castline/fishing-be/internal/models"
	"github.com/castline/fishing-be/internal/models/dto"
	"github.com/castline/fishing-be/internal/storage"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// Unknown username and wrong password must be indistinguishable to the caller.
const invalidCredentialsMsg = "invalid username or password"

// AuthHandler owns the register and login endpoints.
type AuthHandler struct {
	users     storage.UserStore
	games     storage.GameStore
	inventory storage.InventoryStore
	tokens    *auth.TokenManager
	log       zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store storage.Store, tokens *auth.TokenManager, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{users: store, games: store, inventory: store, tokens: tokens, log: log}
}

// Register attaches the auth routes to the router.
func (h *AuthHandler) Register(r *mux.Router) {
	r.HandleFunc("/api/register", h.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/api/login", h.handleLogin).Methods(http.MethodPost)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := validateCredentials(req.Username, req.Password); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Username, string(passwordHash))
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, http.StatusBadRequest, "username already taken")
			return
		}
		h.log.Error().Err(err).Str("username", req.Username).Msg("create user")
		respond.Error(w, http.StatusInternalServerError, "server error")
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		h.log.Error().Err(err).Msg("generate token")
		respond.Error(w, http.StatusInternalServerError, "server error")
		return
	}

	respond.JSON(w, http.StatusOK, dto.RegisterResponse{
		Success:  true,
		UserID:   user.ID,
		Username: user.Username,
		Token:    token,
	})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, err := h.users.FindByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusUnauthorized, invalidCredentialsMsg)
			return
		}
		h.log.Error().Err(err).Str("username", req.Username).Msg("fetch user")
		respond.Error(w, http.StatusInternalServerError, "server error")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusUnauthorized, invalidCredentialsMsg)
		return
	}

	var gameData *models.GameState
	gs, err := h.games.GameStateByUser(r.Context(), user.ID)
	switch {
	case err == nil:
		gameData = &gs
	case errors.Is(err, storage.ErrNotFound):
		// A legacy account may predate the game_data seed; the client
		// treats null as "start fresh".
	default:
		h.log.Error().Err(err).Int64("user_id", user.ID).Msg("fetch game state")
		respond.Error(w, http.StatusInternalServerError, "server error")
		return
	}

	inventory, err := h.inventory.InventoryByUser(r.Context(), user.ID)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", user.ID).Msg("fetch inventory")
		respond.Error(w, http.StatusInternalServerError, "server error")
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		h.log.Error().Err(err).Msg("generate token")
		respond.Error(w, http.StatusInternalServerError, "server error")
		return
	}

	respond.JSON(w, http.StatusOK, dto.LoginResponse{
		Success:   true,
		UserID:    user.ID,
		Username:  user.Username,
		Token:     token,
		GameData:  gameData,
		Inventory: inventory,
	})
}

func validateCredentials(username, password string) error {
	// Character counts, not byte counts: multi-byte usernames are common.
	if utf8.RuneCountInString(username) < minUsernameLen {
		return errors.New("username must be at least 3 characters")
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}
