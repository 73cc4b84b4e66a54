package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=smartlog sslmode=disable"
func NewDB(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Schema creates the transactions table when it does not exist yet.
// It is shared with the pgx adapter.
const Schema = `
	CREATE TABLE IF NOT EXISTS transactions (
		id       BIGINT PRIMARY KEY,
		amount   NUMERIC(14, 2) NOT NULL CHECK (amount > 0),
		category TEXT NOT NULL DEFAULT '',
		type     TEXT NOT NULL CHECK (type IN ('Income', 'Expense')),
		date     DATE NOT NULL,
		note     VARCHAR(60) NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS transactions_date_idx ON transactions (date DESC, id DESC);
`

// EnsureSchema makes sure the tables the repositories need exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
