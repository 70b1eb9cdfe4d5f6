package pg

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/itchan-dev/mediameta/shared/config"
	"github.com/itchan-dev/mediameta/shared/logger"

	_ "github.com/lib/pq" // Registers the PostgreSQL driver
)

//go:embed migrations/init.sql
var initSQL string

type Storage struct {
	db *sql.DB
}

func New(ctx context.Context, cfg config.Pg) (*Storage, error) {
	logger.Log.Info("connecting to db", "host", cfg.Host, "dbname", cfg.Dbname)
	db, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	storage := &Storage{db}
	if err := storage.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	logger.Log.Info("successfully connected to db")
	return storage, nil
}

func Connect(ctx context.Context, cfg config.Pg) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	return db, nil
}

// Migrate creates the schema if it does not exist yet
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, initSQL); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}
