package handlers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castline/fishing-be/internal/auth"
	"github.com/castline/fishing-be/internal/models/dto"
	"github.com/castline/fishing-be/internal/storage/postgres"
)

// TestGameFlowIntegration exercises the full register/login/catch/sell flow
// against a live Postgres instance.
func TestGameFlowIntegration(t *testing.T) {
	if os.Getenv("RUN_GAME_INTEGRATION") != "true" {
		t.Skip("set RUN_GAME_INTEGRATION=true to run this integration test")
	}

	loadDotEnv()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	store, err := postgres.NewStore(ctx, dbURL)
	require.NoError(t, err, "init store")
	defer store.Close()

	tokens := auth.NewTokenManager("integration-secret", "fishing-backend", time.Hour)
	log := zerolog.Nop()

	router := mux.NewRouter()
	NewAuthHandler(store, tokens, log).Register(router)
	NewGameHandler(store, store, log).Register(router, tokens)

	username := fmt.Sprintf("apitest_%d", time.Now().UnixNano())
	password := "integration-pass"

	acct := register(t, router, username, password)
	assert.Equal(t, username, acct.Username)

	loggedIn := login(t, router, username, password)
	assert.Equal(t, acct.UserID, loggedIn.UserID)
	require.NotNil(t, loggedIn.GameData)
	assert.Equal(t, int64(0), loggedIn.GameData.Money)

	rr := doJSON(t, router, "/api/add-fish", acct.Token, dto.AddFishRequest{
		UserID: acct.UserID,
		Fish:   dto.FishPayload{Name: "Carp", Rarity: "common", Weight: 2.3, Price: 10, Color: "silver"},
	})
	require.Equal(t, 200, rr.Code, rr.Body.String())

	rr = doJSON(t, router, "/api/sell-fish", acct.Token, dto.SellFishRequest{UserID: acct.UserID})
	require.Equal(t, 200, rr.Code, rr.Body.String())

	var sellResp dto.SellFishResponse
	decodeInto(t, rr, &sellResp)
	assert.Equal(t, int64(1), sellResp.SoldCount)

	assert.Empty(t, login(t, router, username, password).Inventory)
}

func loadDotEnv() {
	paths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
		"../../../../.env",
	}
	for _, path := range paths {
		_ = godotenv.Overload(path)
	}
}
