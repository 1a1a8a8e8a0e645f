package uow

import (
	"context"
	"errors"
	"log/slog"

	"book-lender/internal/infra"
	"book-lender/internal/infra/db"
	"book-lender/internal/infra/repository"
	"book-lender/internal/pkg/errs"
	"book-lender/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin  = errs.New("failed to begin transaction")
	errTransactionCommit = errs.New("failed to commit transaction")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// Serializable is what makes the ledger's read-recheck-then-write discipline
// sound: two racing transactions on the same book cannot both commit, the
// engine aborts one with SQLSTATE 40001. The abort is surfaced as
// shared.ErrSerializationFailure, never retried here — the caller decides.
func (u *PostgresUoW) WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, &pgTx{dbtx: pgxTx}); err != nil {
		if infra.IsSerializationFailure(err) {
			return errs.Mark(err, shared.ErrSerializationFailure)
		}
		return err
	}

	if err := pgxTx.Commit(ctx); err != nil {
		if infra.IsSerializationFailure(err) {
			return errs.Mark(err, shared.ErrSerializationFailure)
		}
		return errs.Mark(err, errTransactionCommit)
	}

	return nil
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, u.pool)
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	checkoutRepo shared.CheckoutRepository
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Checkouts() shared.CheckoutRepository {
	if t.checkoutRepo == nil {
		t.checkoutRepo = repository.NewCheckoutRepository()
	}
	return t.checkoutRepo
}
