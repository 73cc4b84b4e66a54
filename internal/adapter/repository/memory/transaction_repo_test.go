package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranjan-27/SmartLog/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTx(id domain.TransactionID, amount int64, date time.Time) *domain.Transaction {
	return &domain.Transaction{
		ID:       id,
		Amount:   decimal.NewFromInt(amount),
		Category: "Food",
		Type:     domain.TransactionTypeExpense,
		Date:     date,
	}
}

func TestTransactionRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository()
	tx := newTx(1, 10, day(2024, time.March, 1))

	require.NoError(t, repo.Create(ctx, tx))
	tx.Category = "mutated after create"

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Food", got.Category)

	got.Category = "mutated after read"
	again, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Food", again.Category)
}

func TestTransactionRepository_Errors(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(newTx(1, 10, day(2024, time.March, 1)))

	err := repo.Create(ctx, newTx(1, 20, day(2024, time.March, 2)))
	assert.ErrorIs(t, err, domain.ErrDuplicateTransaction)

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	err = repo.Modify(ctx, func([]*domain.Transaction) ([]*domain.Transaction, error) {
		return []*domain.Transaction{newTx(2, 1, day(2024, 1, 1)), newTx(2, 1, day(2024, 1, 1))}, nil
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateTransaction)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, repo.Create(cancelled, newTx(3, 1, day(2024, 1, 1))), context.Canceled)
}

func TestTransactionRepository_ListOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(
		newTx(1, 10, day(2024, time.January, 1)),
		newTx(3, 30, day(2024, time.March, 1)),
		newTx(2, 20, day(2024, time.March, 1)),
	)

	txs, err := repo.List(ctx)
	require.NoError(t, err)

	ids := make([]domain.TransactionID, 0, len(txs))
	for _, tx := range txs {
		ids = append(ids, tx.ID)
	}
	assert.Equal(t, []domain.TransactionID{3, 2, 1}, ids)
}

func TestTransactionRepository_Modify(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(newTx(1, 10, day(2024, time.January, 1)))

	err := repo.Modify(ctx, func(current []*domain.Transaction) ([]*domain.Transaction, error) {
		require.Len(t, current, 1)
		current[0].Amount = decimal.NewFromInt(99)
		return current, nil
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(99)))
}

func TestTransactionRepository_ModifyErrorLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(newTx(1, 10, day(2024, time.January, 1)))

	err := repo.Modify(ctx, func(current []*domain.Transaction) ([]*domain.Transaction, error) {
		current[0].Amount = decimal.NewFromInt(99)
		return nil, domain.ErrTransactionNotFound
	})
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(10)))
}

func TestTransactionRepository_ModifyBlocksConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(newTx(1, 10, day(2024, time.January, 1)))

	created := make(chan error, 1)
	err := repo.Modify(ctx, func(current []*domain.Transaction) ([]*domain.Transaction, error) {
		go func() { created <- repo.Create(ctx, newTx(2, 20, day(2024, time.January, 2))) }()
		return current, nil
	})
	require.NoError(t, err)
	require.NoError(t, <-created)

	txs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}
