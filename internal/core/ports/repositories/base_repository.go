package repositories

import (
	"context"
)

// TransactionManager runs a unit of work atomically.
type TransactionManager interface {
	// WithinTx runs fn inside one transaction. Repository calls made with the
	// ctx passed to fn join that transaction. The transaction is rolled back when
	// fn returns an error and committed otherwise. Nested calls join the outer transaction.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error

	// WithinReadTx runs fn inside one read-only transaction whose statements all
	// see the same snapshot. Writes made through its ctx fail.
	WithinReadTx(ctx context.Context, fn func(ctx context.Context) error) error
}
