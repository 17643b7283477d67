package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castline/fishing-be/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", "fishing-backend", time.Hour)

	token, err := tm.Generate(models.User{ID: 42, Username: "alice"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "fishing-backend", claims.Issuer)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issued, err := NewTokenManager("secret-a", "fishing-backend", time.Hour).
		Generate(models.User{ID: 1, Username: "alice"})
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", "fishing-backend", time.Hour).Parse(issued)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("secret", "fishing-backend", -time.Minute)

	token, err := tm.Generate(models.User{ID: 1, Username: "alice"})
	require.NoError(t, err)

	_, err = tm.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("secret", "fishing-backend", time.Hour)
	_, err := tm.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
