// Package tx defines transaction management contracts so domain services
// stay decoupled from the storage driver.
package tx

import (
	"context"
)

// Manager runs functions inside a database transaction.
// The concrete implementation lives in infrastructure/storage/postgres.
type Manager interface {
	// RunInTransaction executes fn within a transaction. The transaction is
	// rolled back when fn returns an error and committed otherwise.
	// Nested calls reuse the transaction already carried in ctx.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager adds read-only transactions for reporting queries.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
