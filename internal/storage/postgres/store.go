package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/castline/fishing-be/internal/models"
	"github.com/castline/fishing-be/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

const uniqueViolation = "23505"

// Store provides Postgres-backed persistence for accounts, game state,
// and inventory.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to the database and provisions the schema.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS game_data (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			money BIGINT NOT NULL DEFAULT 0 CHECK (money >= 0),
			fishing_rod TEXT NOT NULL DEFAULT 'normal',
			owned_rods TEXT[] NOT NULL DEFAULT '{normal}',
			last_saved TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS inventory (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			fish_name TEXT NOT NULL,
			rarity TEXT NOT NULL,
			weight NUMERIC(4,1) NOT NULL,
			price BIGINT NOT NULL,
			colour TEXT NOT NULL,
			favourite BOOLEAN NOT NULL DEFAULT FALSE,
			caught_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS inventory_user_caught_idx ON inventory (user_id, caught_at DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// CreateUser inserts the credential row and seeds the default game state
// inside one transaction so a mid-sequence failure cannot leave an account
// without progress data.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (models.User, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("begin registration: %w", err)
	}
	defer tx.Rollback(ctx)

	var user models.User
	row := tx.QueryRow(ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2)
		 RETURNING id, username, created_at`,
		username, passwordHash,
	)
	if err := row.Scan(&user.ID, &user.Username, &user.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	user.PasswordHash = passwordHash

	if _, err := tx.Exec(ctx,
		`INSERT INTO game_data (user_id, money, fishing_rod, owned_rods)
		 VALUES ($1, 0, $2, ARRAY[$2])`,
		user.ID, models.DefaultRod,
	); err != nil {
		return models.User{}, fmt.Errorf("seed game data: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.User{}, fmt.Errorf("commit registration: %w", err)
	}
	return user, nil
}

// FindByUsername fetches the credential row for a username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	row := s.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = $1`,
		username,
	)
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// GameStateByUser fetches the player's progress row.
func (s *Store) GameStateByUser(ctx context.Context, userID int64) (models.GameState, error) {
	var gs models.GameState
	row := s.pool.QueryRow(ctx,
		`SELECT id, user_id, money, fishing_rod, owned_rods, last_saved
		 FROM game_data WHERE user_id = $1`,
		userID,
	)
	if err := row.Scan(&gs.ID, &gs.UserID, &gs.Money, &gs.FishingRod, &gs.OwnedRods, &gs.LastSaved); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.GameState{}, storage.ErrNotFound
		}
		return models.GameState{}, fmt.Errorf("find game state: %w", err)
	}
	return gs, nil
}

// SaveGameState overwrites the player's progress row in full.
func (s *Store) SaveGameState(ctx context.Context, userID int64, money int64, fishingRod string, ownedRods []string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE game_data
		 SET money = $1, fishing_rod = $2, owned_rods = $3, last_saved = NOW()
		 WHERE user_id = $4`,
		money, fishingRod, ownedRods, userID,
	)
	if err != nil {
		return fmt.Errorf("save game state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// InventoryByUser lists the player's fish, most recent catch first.
func (s *Store) InventoryByUser(ctx context.Context, userID int64) ([]models.InventoryItem, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, fish_name, rarity, weight, price, colour, favourite, caught_at
		 FROM inventory WHERE user_id = $1 ORDER BY caught_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	items := []models.InventoryItem{}
	for rows.Next() {
		var item models.InventoryItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.FishName, &item.Rarity,
			&item.Weight, &item.Price, &item.Colour, &item.Favourite, &item.CaughtAt); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return items, nil
}

// AddFish appends one caught fish with favourite and caught_at defaulted.
func (s *Store) AddFish(ctx context.Context, userID int64, fish models.CaughtFish) error {
	if _, err := s.pool.Exec(ctx,
		`INSERT INTO inventory (user_id, fish_name, rarity, weight, price, colour)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		userID, fish.Name, fish.Rarity, fish.Weight, fish.Price, fish.Colour,
	); err != nil {
		return fmt.Errorf("add fish: %w", err)
	}
	return nil
}

// SetFavourite updates the flag on a fish the player owns.
func (s *Store) SetFavourite(ctx context.Context, fishID, userID int64, favourite bool) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE inventory SET favourite = $1 WHERE id = $2 AND user_id = $3`,
		favourite, fishID, userID,
	)
	if err != nil {
		return fmt.Errorf("set favourite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// SellFish deletes the player's non-favourited fish and returns the count.
func (s *Store) SellFish(ctx context.Context, userID int64) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM inventory WHERE user_id = $1 AND favourite = FALSE`,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("sell fish: %w", err)
	}
	return tag.RowsAffected(), nil
}
