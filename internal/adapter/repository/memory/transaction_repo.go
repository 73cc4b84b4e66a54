package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ranjan-27/SmartLog/internal/domain"
)

// TransactionRepository keeps transactions in process memory.
// It has no in-place update; edits go through Modify.
type TransactionRepository struct {
	mu  sync.RWMutex
	txs []*domain.Transaction
}

// NewTransactionRepository creates a new in-memory transaction repository
func NewTransactionRepository(seed ...*domain.Transaction) *TransactionRepository {
	r := &TransactionRepository{}
	for _, tx := range seed {
		r.txs = append(r.txs, tx.Clone())
	}
	return r
}

// Create stores a copy of tx
func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.txs {
		if existing.ID == tx.ID {
			return fmt.Errorf("%w: %d", domain.ErrDuplicateTransaction, tx.ID)
		}
	}

	r.txs = append(r.txs, tx.Clone())
	return nil
}

// GetByID retrieves a transaction by its ID
func (r *TransactionRepository) GetByID(ctx context.Context, id domain.TransactionID) (*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, tx := range r.txs {
		if tx.ID == id {
			return tx.Clone(), nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

// List returns copies of every transaction, newest date first, then highest ID
func (r *TransactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	out := make([]*domain.Transaction, 0, len(r.txs))
	for _, tx := range r.txs {
		out = append(out, tx.Clone())
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Modify rewrites the collection under the write lock.
// fn sees copies, so a failed modification leaves nothing half-applied.
func (r *TransactionRepository) Modify(ctx context.Context, fn domain.ModifyFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current := make([]*domain.Transaction, 0, len(r.txs))
	for _, tx := range r.txs {
		current = append(current, tx.Clone())
	}

	modified, err := fn(current)
	if err != nil {
		return err
	}

	next := make([]*domain.Transaction, 0, len(modified))
	seen := make(map[domain.TransactionID]struct{}, len(modified))
	for _, tx := range modified {
		if _, dup := seen[tx.ID]; dup {
			return fmt.Errorf("%w: %d", domain.ErrDuplicateTransaction, tx.ID)
		}
		seen[tx.ID] = struct{}{}
		next = append(next, tx.Clone())
	}

	r.txs = next
	return nil
}
