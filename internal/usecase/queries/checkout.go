package queries

import (
	"context"

	"book-lender/internal/infra/db"
	"book-lender/internal/pkg/errs"
	"book-lender/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookNotFound = errs.New("book not found")
	ErrQueryFailed  = errs.New("checkout query failed")
)

// CheckoutReader is the read-side port. Implementations scan straight into
// view rows without going through the write-side entities.
type CheckoutReader interface {
	FindUnreturnedAll(ctx context.Context, dbtx db.DBTX) ([]CheckoutView, error)
	FindUnreturnedByBorrower(ctx context.Context, dbtx db.DBTX, borrowerID uuid.UUID) ([]CheckoutView, error)
	FindUnreturnedByBook(ctx context.Context, dbtx db.DBTX, bookID uuid.UUID) (*CheckoutView, error)
	FindReturnedByBook(ctx context.Context, dbtx db.DBTX, bookID uuid.UUID) ([]CheckoutView, error)
}

type BookReader interface {
	Exists(ctx context.Context, dbtx db.DBTX, bookID uuid.UUID) (bool, error)
}

type CheckoutQueries interface {
	ListUnreturned(ctx context.Context) ([]CheckoutView, error)
	ListUnreturnedByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]CheckoutView, error)
	// FindHistoryByBook returns the live loan first (when one exists) followed
	// by archived loans, newest checkout first.
	FindHistoryByBook(ctx context.Context, bookID uuid.UUID) ([]CheckoutView, error)
}

type checkoutQueriesImpl struct {
	uow       shared.UnitOfWork
	checkouts CheckoutReader
	books     BookReader
}

func NewCheckoutQueries(uow shared.UnitOfWork, checkouts CheckoutReader, books BookReader) CheckoutQueries {
	return &checkoutQueriesImpl{
		uow:       uow,
		checkouts: checkouts,
		books:     books,
	}
}

func (q *checkoutQueriesImpl) ListUnreturned(ctx context.Context) ([]CheckoutView, error) {
	var views []CheckoutView
	err := q.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var err error
		views, err = q.checkouts.FindUnreturnedAll(ctx, dbtx)
		if err != nil {
			return errs.Mark(err, ErrQueryFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *checkoutQueriesImpl) ListUnreturnedByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]CheckoutView, error) {
	var views []CheckoutView
	err := q.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var err error
		views, err = q.checkouts.FindUnreturnedByBorrower(ctx, dbtx, borrowerID)
		if err != nil {
			return errs.Mark(err, ErrQueryFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *checkoutQueriesImpl) FindHistoryByBook(ctx context.Context, bookID uuid.UUID) ([]CheckoutView, error) {
	var history []CheckoutView
	// Both reads must observe the same snapshot or an in-flight return could
	// show the same loan twice (or not at all).
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		exists, err := q.books.Exists(ctx, dbtx, bookID)
		if err != nil {
			return errs.Mark(err, ErrQueryFailed)
		}
		if !exists {
			return ErrBookNotFound
		}

		active, err := q.checkouts.FindUnreturnedByBook(ctx, dbtx, bookID)
		if err != nil {
			return errs.Mark(err, ErrQueryFailed)
		}
		returned, err := q.checkouts.FindReturnedByBook(ctx, dbtx, bookID)
		if err != nil {
			return errs.Mark(err, ErrQueryFailed)
		}

		history = make([]CheckoutView, 0, len(returned)+1)
		if active != nil {
			history = append(history, *active)
		}
		history = append(history, returned...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}
