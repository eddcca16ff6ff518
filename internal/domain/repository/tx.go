package repository

import "context"

// TxManager runs a function inside a database transaction. Repositories
// observe the transaction through the context, so every repo call made
// inside fn commits or rolls back as one unit.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
