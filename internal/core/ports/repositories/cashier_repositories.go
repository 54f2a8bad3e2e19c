package repositories

import (
	"context"

	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
)

// CashierReader defines read operations for cashiers and their transactions.
type CashierReader interface {
	// FindCashierByID retrieves a cashier. Returns apperrors.ErrNotFound when missing.
	FindCashierByID(ctx context.Context, id int64) (*domain.Cashier, error)

	// ListCashierTransactions retrieves a page of a cashier's transactions, newest first.
	// It returns the transactions and a token for the next page, if any.
	ListCashierTransactions(ctx context.Context, cashierID int64, limit int, nextToken *string) ([]domain.CashierTransaction, *string, error)
}

// CashierWriter defines write operations for cashier transactions.
type CashierWriter interface {
	// SaveCashierTransaction persists a cashier transaction and returns it with its assigned id.
	SaveCashierTransaction(ctx context.Context, txn domain.CashierTransaction) (*domain.CashierTransaction, error)
}

// CashierRepositoryFacade combines the cashier interfaces.
type CashierRepositoryFacade interface {
	CashierReader
	CashierWriter
}
