package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	_ "github.com/pratofeito/pratofeito/internal/adapter/postgres/migrations"
	"github.com/pratofeito/pratofeito/internal/config"
)

// Migrate runs all pending schema migrations through a database/sql
// connection, which goose requires.
func Migrate(cfg config.DatabaseConfig) error {
	db, err := sql.Open("pgx", ConnString(cfg))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := goose.Up(db, "./internal/adapter/postgres/migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
