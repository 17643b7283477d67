package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/castline/fishing-be/internal/auth"
	"github.com/castline/fishing-be/internal/http/respond"
)

type playerCtxKeyType int

const playerCtxKey playerCtxKeyType = iota

// RequireAuth rejects requests without a valid Bearer token and stores the
// authenticated player's id in the request context.
func RequireAuth(tokens *auth.TokenManager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respond.Error(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			respond.Error(w, http.StatusUnauthorized, "invalid authorization header")
			return
		}

		claims, err := tokens.Parse(parts[1])
		if err != nil {
			respond.Error(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), playerCtxKey, claims.UserID)
		next(w, r.WithContext(ctx))
	}
}

// PlayerID returns the authenticated player's id from the context, or 0 when
// the request did not pass through RequireAuth.
func PlayerID(ctx context.Context) int64 {
	id, _ := ctx.Value(playerCtxKey).(int64)
	return id
}
