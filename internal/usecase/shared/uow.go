package shared

import (
	"context"
	"time"

	"book-lender/internal/domain/checkout"
	"book-lender/internal/infra/db"
	"book-lender/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrSerializationFailure marks a transaction the storage engine aborted
// because it lost a serializable-isolation race. Distinct from storage
// failures: the caller may safely re-read and retry.
var ErrSerializationFailure = errs.New("transaction aborted by serialization conflict")

type UnitOfWork interface {
	// WithinSerializable: ledger write operations. Serializable isolation makes
	// the read-recheck-then-write pattern race-free; conflicting concurrent
	// transactions abort with ErrSerializationFailure instead of both
	// committing.
	WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: read-only transaction for multi-table consistent snapshots
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	Checkouts() CheckoutRepository
	DB() db.DBTX
}

// LoanState is the ledger's in-transaction view of one book: whether the book
// exists and which loan, if any, is outstanding. Both write operations re-read
// it inside their own transaction; a check done outside the transaction
// boundary could be stale by the time the write lands.
type LoanState struct {
	BookID uuid.UUID
	Active *ActiveLoan
}

type ActiveLoan struct {
	CheckoutID   uuid.UUID
	BorrowerID   uuid.UUID
	CheckedOutAt time.Time
}

type CheckoutRepository interface {
	// LoanState returns KindNotFound when the book itself does not exist.
	LoanState(ctx context.Context, tx db.DBTX, bookID uuid.UUID) (*LoanState, error)
	Create(ctx context.Context, tx db.DBTX, active *checkout.Active) error
	// Archive copies the active row into the archive with returned_at set,
	// then deletes it. Zero rows affected at either step means a concurrent
	// mutation won the race and surfaces as KindConflict.
	Archive(ctx context.Context, tx db.DBTX, archived *checkout.Archived) error
}
