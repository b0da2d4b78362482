package ports

import "context"

// UnitOfWork runs a function inside a single database transaction.
//
// The context passed to fn carries the open transaction; repository
// calls made with that context join it. fn returning an error rolls the
// transaction back, nil commits it.
//
// Pattern: Unit of Work
type UnitOfWork interface {
	// Execute begins a transaction, runs fn, and commits or rolls back
	// based on fn's error.
	Execute(ctx context.Context, fn func(ctx context.Context) error) error

	// ExecuteWithResult is Execute for functions that produce a value.
	// The value is only meaningful when the returned error is nil.
	ExecuteWithResult(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error)
}
