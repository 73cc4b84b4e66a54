package summary

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ranjan-27/SmartLog/internal/domain"
)

// Result represents the totals across all committed transactions
type Result struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
	Count   int
}

// Service computes summaries over the transaction store
type Service struct {
	TransactionRepo domain.TransactionLister
}

// NewService creates a new Service instance
func NewService(transactionRepo domain.TransactionLister) *Service {
	return &Service{
		TransactionRepo: transactionRepo,
	}
}

// GetSummary totals every transaction in the store
// Logic:
//   - Income: sum of Income amounts
//   - Expense: sum of Expense amounts
//   - Balance: Income - Expense
func (s *Service) GetSummary(ctx context.Context) (*Result, error) {
	txs, err := s.TransactionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	income, expense := decimal.Zero, decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case domain.TransactionTypeIncome:
			income = income.Add(tx.Amount)
		case domain.TransactionTypeExpense:
			expense = expense.Add(tx.Amount)
		}
	}

	return &Result{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
		Count:   len(txs),
	}, nil
}
