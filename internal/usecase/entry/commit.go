package entry

import (
	"context"
	"fmt"

	"github.com/ranjan-27/SmartLog/internal/domain"
)

type commitFunc func(ctx context.Context, tx *domain.Transaction) error

// commitStrategy is one way of handing a transaction to the store
type commitStrategy struct {
	name     string
	commit   commitFunc
	degraded bool
}

// commitPlan holds the store operations available for each kind of submit.
// Edit strategies are kept in preference order; a nil commit marks a capability the store lacks.
type commitPlan struct {
	create commitStrategy
	edit   []commitStrategy
}

// newCommitPlan probes the store's optional capabilities once
func newCommitPlan(store domain.TransactionRepository, allowDuplicateOnEdit bool) commitPlan {
	var update, updateByID, replace, fallback commitFunc

	if u, ok := store.(domain.TransactionUpdater); ok {
		update = u.Update
	}
	if u, ok := store.(domain.TransactionIDUpdater); ok {
		updateByID = func(ctx context.Context, tx *domain.Transaction) error {
			return u.UpdateByID(ctx, tx.ID, tx)
		}
	}
	if m, ok := store.(domain.TransactionModifier); ok {
		replace = func(ctx context.Context, tx *domain.Transaction) error {
			return replaceInList(ctx, m, tx)
		}
	}
	if allowDuplicateOnEdit {
		fallback = store.Create
	}

	return commitPlan{
		create: commitStrategy{name: "create", commit: store.Create},
		edit: []commitStrategy{
			{name: "update", commit: update},
			{name: "update-by-id", commit: updateByID},
			{name: "replace", commit: replace},
			{name: "create-fallback", commit: fallback, degraded: true},
		},
	}
}

// forEdit returns the most preferred edit strategy the store supports
func (p commitPlan) forEdit() (commitStrategy, bool) {
	for _, s := range p.edit {
		if s.commit != nil {
			return s, true
		}
	}
	return commitStrategy{}, false
}

// replaceInList swaps the entry with tx's ID inside a single atomic modification
func replaceInList(ctx context.Context, m domain.TransactionModifier, tx *domain.Transaction) error {
	return m.Modify(ctx, func(current []*domain.Transaction) ([]*domain.Transaction, error) {
		next := make([]*domain.Transaction, len(current))
		found := false
		for i, t := range current {
			if t.ID == tx.ID {
				next[i] = tx
				found = true
				continue
			}
			next[i] = t
		}

		if !found {
			return nil, fmt.Errorf("%w: %d", domain.ErrTransactionNotFound, tx.ID)
		}
		return next, nil
	})
}
