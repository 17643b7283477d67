package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/castline/fishing-be/internal/auth"
	"github.com/castline/fishing-be/internal/config"
	"github.com/castline/fishing-be/internal/http/handlers"
	"github.com/castline/fishing-be/internal/middleware"
	"github.com/castline/fishing-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, log zerolog.Logger, store storage.Store) *Server {
	router := mux.NewRouter()

	health := handlers.NewHealthHandler(time.Now())
	health.Register(router)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	authHandler := handlers.NewAuthHandler(store, tokens, log)
	authHandler.Register(router)

	gameHandler := handlers.NewGameHandler(store, store, log)
	gameHandler.Register(router, tokens)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(log, router))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
