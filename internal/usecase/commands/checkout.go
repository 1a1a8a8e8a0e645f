package commands

import (
	"context"
	"errors"
	"time"

	"book-lender/internal/domain/checkout"
	"book-lender/internal/infra"
	"book-lender/internal/pkg/clock"
	"book-lender/internal/pkg/errs"
	"book-lender/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookNotFound      = errs.New("book not found")
	ErrNoActiveCheckout  = errs.New("no active checkout for book")
	ErrAlreadyCheckedOut = errs.New("book is already checked out")
	ErrCheckoutMismatch  = errs.New("checkout does not match the active loan")
	ErrCheckoutConflict  = errs.New("checkout conflict, state changed concurrently")
	ErrDomainValidation  = errs.New("domain validation error")
	ErrStorageFailure    = errs.New("storage operation failed")
)

type CheckoutCommands interface {
	// CheckOut lends bookID to borrowerID. A zero checkedOutAt means "now".
	CheckOut(ctx context.Context, bookID, borrowerID uuid.UUID, checkedOutAt time.Time) (uuid.UUID, error)
	// Return completes the loan identified by checkoutID. The caller must name
	// the same book and borrower the live loan carries; anything else is a
	// stale or spoofed request.
	Return(ctx context.Context, checkoutID, bookID, borrowerID uuid.UUID, returnedAt time.Time) error
}

type checkoutCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCheckoutCommands(uow shared.UnitOfWork, clk clock.Clock) CheckoutCommands {
	return &checkoutCommandsImpl{
		uow:   uow,
		clock: clk,
	}
}

func (c *checkoutCommandsImpl) CheckOut(
	ctx context.Context,
	bookID, borrowerID uuid.UUID,
	checkedOutAt time.Time,
) (uuid.UUID, error) {
	if checkedOutAt.IsZero() {
		checkedOutAt = c.clock.Now()
	}

	var checkoutID uuid.UUID
	err := c.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Precondition re-check inside the transaction. An earlier read outside
		// this boundary could be stale by the time the insert commits.
		state, err := tx.Checkouts().LoanState(ctx, tx.DB(), bookID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookNotFound
			}
			return errs.Mark(err, ErrStorageFailure)
		}
		if state.Active != nil {
			return ErrAlreadyCheckedOut
		}

		active, err := checkout.NewActive(bookID, borrowerID, checkedOutAt)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Checkouts().Create(ctx, tx.DB(), active); err != nil {
			// UNIQUE(book_id) is the backstop under weaker-than-expected isolation
			if infra.IsKind(err, infra.KindDuplicateKey) || infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrAlreadyCheckedOut)
			}
			return errs.Mark(err, ErrStorageFailure)
		}

		checkoutID = active.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, c.mapTxError(err)
	}

	return checkoutID, nil
}

func (c *checkoutCommandsImpl) Return(
	ctx context.Context,
	checkoutID, bookID, borrowerID uuid.UUID,
	returnedAt time.Time,
) error {
	if returnedAt.IsZero() {
		returnedAt = c.clock.Now()
	}

	err := c.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		state, err := tx.Checkouts().LoanState(ctx, tx.DB(), bookID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookNotFound
			}
			return errs.Mark(err, ErrStorageFailure)
		}
		// An already-archived loan has no active row anymore, so a duplicate
		// Return lands here as NotFound rather than being replayed.
		if state.Active == nil {
			return ErrNoActiveCheckout
		}

		active := checkout.ReconstructActive(
			state.Active.CheckoutID, bookID, state.Active.BorrowerID, state.Active.CheckedOutAt)
		if !active.Matches(checkoutID, borrowerID) {
			return ErrCheckoutMismatch
		}

		archived, err := active.Archive(returnedAt)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Checkouts().Archive(ctx, tx.DB(), archived); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrCheckoutConflict)
			}
			return errs.Mark(err, ErrStorageFailure)
		}

		return nil
	})
	if err != nil {
		return c.mapTxError(err)
	}

	return nil
}

// mapTxError turns a serialization abort into the retryable-conflict error the
// API promises; business errors pass through untouched.
func (c *checkoutCommandsImpl) mapTxError(err error) error {
	if errors.Is(err, shared.ErrSerializationFailure) {
		return errs.Mark(err, ErrCheckoutConflict)
	}
	return err
}
