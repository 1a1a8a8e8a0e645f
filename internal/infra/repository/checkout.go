package repository

import (
	"context"

	"book-lender/internal/domain/checkout"
	"book-lender/internal/infra"
	"book-lender/internal/infra/db"
	"book-lender/internal/pkg/pgconv"
	"book-lender/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// CheckoutRepository is the ledger's write side. Every method is meant to be
// called on a transaction handle obtained from the unit of work; the SQL here
// assumes serializable isolation and does not lock rows itself.
type CheckoutRepository struct{}

func NewCheckoutRepository() *CheckoutRepository {
	return &CheckoutRepository{}
}

const loanStateQuery = `
	SELECT
		b.id,
		c.checkout_id,
		c.borrower_id,
		c.checked_out_at
	FROM books AS b
	LEFT OUTER JOIN checkouts AS c ON c.book_id = b.id
	WHERE b.id = $1
`

// LoanState re-reads the book's loan state inside the caller's transaction.
// The LEFT OUTER JOIN distinguishes "book missing" (no row) from "book exists,
// no active loan" (row with NULL checkout columns).
func (r *CheckoutRepository) LoanState(ctx context.Context, tx db.DBTX, bookID uuid.UUID) (*shared.LoanState, error) {
	var (
		foundBookID  uuid.UUID
		checkoutID   pgtype.UUID
		borrowerID   pgtype.UUID
		checkedOutAt pgtype.Timestamptz
	)

	err := tx.QueryRow(ctx, loanStateQuery, bookID).Scan(&foundBookID, &checkoutID, &borrowerID, &checkedOutAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read loan state", err)
	}

	state := &shared.LoanState{BookID: foundBookID}
	if checkoutID.Valid {
		state.Active = &shared.ActiveLoan{
			CheckoutID:   pgconv.UUIDFromPgtype(checkoutID),
			BorrowerID:   pgconv.UUIDFromPgtype(borrowerID),
			CheckedOutAt: pgconv.TimeFromPgtype(checkedOutAt),
		}
	}
	return state, nil
}

const insertCheckoutQuery = `
	INSERT INTO checkouts (checkout_id, book_id, borrower_id, checked_out_at)
	VALUES ($1, $2, $3, $4)
`

func (r *CheckoutRepository) Create(ctx context.Context, tx db.DBTX, active *checkout.Active) error {
	tag, err := tx.Exec(ctx, insertCheckoutQuery,
		active.ID(), active.BookID(), active.BorrowerID(), pgconv.TimeToPgtype(active.CheckedOutAt()))
	if err != nil {
		return infra.WrapRepoErr("failed to create checkout record", err)
	}
	if tag.RowsAffected() < 1 {
		return infra.WrapRepoErr("no checkout record created", nil, infra.KindConflict)
	}
	return nil
}

const archiveCheckoutQuery = `
	INSERT INTO returned_checkouts (checkout_id, book_id, borrower_id, checked_out_at, returned_at)
	SELECT checkout_id, book_id, borrower_id, checked_out_at, $1
	FROM checkouts
	WHERE checkout_id = $2
`

const deleteCheckoutQuery = `
	DELETE FROM checkouts
	WHERE checkout_id = $1
`

// Archive moves the loan from the active table to the append-only archive.
// Both statements run in the caller's transaction: a failure between them
// rolls everything back, so the ledger never ends up with neither record, nor
// with both. Zero rows affected means a concurrent transaction already moved
// or replaced the row.
func (r *CheckoutRepository) Archive(ctx context.Context, tx db.DBTX, archived *checkout.Archived) error {
	tag, err := tx.Exec(ctx, archiveCheckoutQuery, pgconv.TimeToPgtype(archived.ReturnedAt()), archived.ID())
	if err != nil {
		return infra.WrapRepoErr("failed to create returned checkout record", err)
	}
	if tag.RowsAffected() < 1 {
		return infra.WrapRepoErr("active checkout already gone", nil, infra.KindConflict)
	}

	tag, err = tx.Exec(ctx, deleteCheckoutQuery, archived.ID())
	if err != nil {
		return infra.WrapRepoErr("failed to delete checkout record", err)
	}
	if tag.RowsAffected() < 1 {
		return infra.WrapRepoErr("active checkout already deleted", nil, infra.KindConflict)
	}

	return nil
}
