package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ranjan-27/SmartLog/internal/domain"
)

const uniqueViolation = "23505"

// TransactionRepository stores transactions through a pgx connection pool.
// It updates by explicit ID rather than by record.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// Connect opens a pool and verifies it with a ping
func Connect(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// EnsureSchema creates the transactions table when missing
func (r *TransactionRepository) EnsureSchema(ctx context.Context, schema string) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Create inserts a transaction under its pre-assigned ID
func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO transactions (id, amount, category, type, date, note)
		 VALUES ($1, $2::numeric, $3, $4, $5, $6)`,
		int64(tx.ID), tx.Amount.String(), tx.Category, string(tx.Type), tx.Date, tx.Note,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %d", domain.ErrDuplicateTransaction, tx.ID)
		}
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// UpdateByID overwrites the transaction identified by id
func (r *TransactionRepository) UpdateByID(ctx context.Context, id domain.TransactionID, tx *domain.Transaction) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE transactions
		 SET amount = $2::numeric, category = $3, type = $4, date = $5, note = $6
		 WHERE id = $1`,
		int64(id), tx.Amount.String(), tx.Category, string(tx.Type), tx.Date, tx.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %d", domain.ErrTransactionNotFound, id)
	}
	return nil
}

// GetByID retrieves a transaction by its ID
func (r *TransactionRepository) GetByID(ctx context.Context, id domain.TransactionID) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, amount::text, category, type, date, note
		 FROM transactions WHERE id = $1`,
		int64(id),
	)

	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", domain.ErrTransactionNotFound, id)
		}
		return nil, fmt.Errorf("failed to get transaction by ID: %w", err)
	}
	return tx, nil
}

// List returns every transaction, newest first
func (r *TransactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, amount::text, category, type, date, note
		 FROM transactions ORDER BY date DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []*domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txs, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		id       int64
		amount   string
		category string
		typ      string
		date     time.Time
		note     string
	)
	if err := row.Scan(&id, &amount, &category, &typ, &date, &note); err != nil {
		return nil, err
	}

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}

	return &domain.Transaction{
		ID:       domain.TransactionID(id),
		Amount:   parsed,
		Category: category,
		Type:     domain.TransactionType(typ),
		Date:     date.UTC(),
		Note:     note,
	}, nil
}
