package domain

import "context"

// TransactionManager scopes a function to a single storage transaction.
// Every mutation performed through repositories inside fn commits or rolls
// back as one unit; partial writes are never visible to other requests.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
