//go:build integration

package pgstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranjan-27/SmartLog/internal/adapter/repository/postgres"
	"github.com/ranjan-27/SmartLog/internal/domain"
)

func setupRepo(t *testing.T) *TransactionRepository {
	t.Helper()

	connStr := os.Getenv("DB_CONN_STR")
	if connStr == "" {
		t.Skip("DB_CONN_STR not set")
	}

	ctx := context.Background()
	pool, err := Connect(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := NewTransactionRepository(pool)
	require.NoError(t, repo.EnsureSchema(ctx, postgres.Schema))
	_, err = pool.Exec(ctx, "TRUNCATE transactions")
	require.NoError(t, err)

	return repo
}

func TestTransactionRepository_CreateUpdateList(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	older := &domain.Transaction{
		ID: 1, Amount: decimal.NewFromInt(1000), Type: domain.TransactionTypeIncome,
		Date: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	newer := &domain.Transaction{
		ID: 2, Amount: decimal.RequireFromString("12.75"), Category: "Food", Type: domain.TransactionTypeExpense,
		Date: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), Note: "lunch",
	}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	assert.ErrorIs(t, repo.Create(ctx, newer), domain.ErrDuplicateTransaction)

	newer.Category = "Groceries"
	require.NoError(t, repo.UpdateByID(ctx, 2, newer))

	txs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, domain.TransactionID(2), txs[0].ID)
	assert.Equal(t, "Groceries", txs[0].Category)
	assert.True(t, txs[0].Amount.Equal(decimal.RequireFromString("12.75")))
}

func TestTransactionRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	_, err := repo.GetByID(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	err = repo.UpdateByID(ctx, 404, &domain.Transaction{Amount: decimal.NewFromInt(1), Type: domain.TransactionTypeIncome})
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}
