package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/ranjan-27/SmartLog/internal/domain"
)

// uniqueViolation is the SQLSTATE for a duplicate primary key
const uniqueViolation = "23505"

// TransactionRepository implements domain.TransactionRepository,
// domain.TransactionUpdater and domain.TransactionReader on database/sql
type TransactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts a transaction under its pre-assigned ID
func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, amount, category, type, date, note)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		int64(tx.ID),
		tx.Amount.String(),
		tx.Category,
		string(tx.Type),
		tx.Date,
		tx.Note,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %d", domain.ErrDuplicateTransaction, tx.ID)
		}
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// Update overwrites every column of the transaction with the same ID
func (r *TransactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	query := `
		UPDATE transactions
		SET amount = $2, category = $3, type = $4, date = $5, note = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		int64(tx.ID),
		tx.Amount.String(),
		tx.Category,
		string(tx.Type),
		tx.Date,
		tx.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %d", domain.ErrTransactionNotFound, tx.ID)
	}

	return nil
}

// GetByID retrieves a transaction by its ID
func (r *TransactionRepository) GetByID(ctx context.Context, id domain.TransactionID) (*domain.Transaction, error) {
	query := `
		SELECT id, amount, category, type, date, note
		FROM transactions
		WHERE id = $1
	`

	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, int64(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", domain.ErrTransactionNotFound, id)
		}
		return nil, fmt.Errorf("failed to get transaction by ID: %w", err)
	}

	return tx, nil
}

// List returns every transaction, newest first
func (r *TransactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	query := `
		SELECT id, amount, category, type, date, note
		FROM transactions
		ORDER BY date DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
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

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*domain.Transaction, error) {
	var (
		tx        domain.Transaction
		id        int64
		amountStr string
		typ       string
	)

	if err := row.Scan(&id, &amountStr, &tx.Category, &typ, &tx.Date, &tx.Note); err != nil {
		return nil, err
	}

	// Parse amount (NUMERIC)
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}

	tx.ID = domain.TransactionID(id)
	tx.Amount = amount
	tx.Type = domain.TransactionType(typ)
	tx.Date = tx.Date.UTC()

	return &tx, nil
}
