package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"devfolio/internal/domain"
	"devfolio/internal/domain/repositories"
)

// TransactionManager implements the TransactionManager interface on a
// pgx connection pool.
type TransactionManager struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(pool *pgxpool.Pool, logger *slog.Logger) repositories.TransactionManager {
	return &TransactionManager{pool: pool, logger: logger}
}

// ExecTx executes fn within a transaction bound to one pooled connection.
// Domain errors returned by fn (not-found, conflict, invalid-operation)
// pass through untouched after rollback; anything else crossing this
// boundary is wrapped as a StorageError so raw driver errors never reach
// callers. The deferred rollback is a no-op once commit succeeds, so the
// connection is released on every exit path.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	tx, err := tm.pool.Begin(ctx)
	if err != nil {
		return &domain.StorageError{Op: "begin transaction", Cause: err}
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			tm.logger.Error("rollback failed", "error", err)
		}
	}()

	txCtx := repositories.SetTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		if isDomainError(err) {
			return err
		}
		return &domain.StorageError{Op: "transaction", Cause: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return &domain.StorageError{Op: "commit transaction", Cause: err}
	}

	return nil
}

// isDomainError reports whether err already carries one of the exposed
// error kinds and needs no StorageError translation.
func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrInvalidOperation) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrStorage)
}
