package domain

import (
	"context"
	"errors"
)

var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrDuplicateTransaction = errors.New("transaction id already exists")
)

// TransactionRepository is the minimum a transaction store must offer
type TransactionRepository interface {
	// Create stores a new transaction under its pre-assigned ID
	Create(ctx context.Context, tx *Transaction) error
}

// TransactionUpdater is implemented by stores that replace a record in place
type TransactionUpdater interface {
	// Update overwrites the stored transaction with the same ID
	Update(ctx context.Context, tx *Transaction) error
}

// TransactionIDUpdater is implemented by stores that update by explicit ID
type TransactionIDUpdater interface {
	// UpdateByID overwrites the stored transaction identified by id
	UpdateByID(ctx context.Context, id TransactionID, tx *Transaction) error
}

// TransactionLister is implemented by stores that can return their whole collection
type TransactionLister interface {
	// List returns every transaction, newest first
	List(ctx context.Context) ([]*Transaction, error)
}

// ModifyFunc receives the current collection and returns the one to store in its place
type ModifyFunc func(current []*Transaction) ([]*Transaction, error)

// TransactionModifier is implemented by stores whose collection can be rewritten as a whole.
// Modify runs fn against the latest collection and stores its result atomically;
// no other write lands between the read and the write. An error from fn leaves the store unchanged.
type TransactionModifier interface {
	Modify(ctx context.Context, fn ModifyFunc) error
}

// TransactionReader is what hosts need to render and pick transactions to edit
type TransactionReader interface {
	TransactionLister

	// GetByID retrieves a transaction by its ID
	GetByID(ctx context.Context, id TransactionID) (*Transaction, error)
}
