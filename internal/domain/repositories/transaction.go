package repositories

import "context"

// TxFn is a function that runs within a transaction scope.
type TxFn func(ctx context.Context) error

// TransactionManager owns the begin/commit/rollback discipline for every
// multi-statement mutation. ExecTx binds one pooled connection, runs fn
// with the transaction in the context, commits on nil return and rolls
// back on any error. The connection is released on every exit path.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
