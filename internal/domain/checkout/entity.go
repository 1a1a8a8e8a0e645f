package checkout

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingBook            = errors.New("book id is required")
	ErrMissingBorrower        = errors.New("borrower id is required")
	ErrMissingTimestamp       = errors.New("checkout timestamp is required")
	ErrReturnedBeforeCheckout = errors.New("returned_at must not precede checked_out_at")
)

// Active is a loan that is currently outstanding. For any book at most one
// Active exists at any instant; the storage layer enforces this under
// serializable isolation and a UNIQUE(book_id) backstop.
type Active struct {
	id           uuid.UUID
	bookID       uuid.UUID
	borrowerID   uuid.UUID
	checkedOutAt time.Time
}

func NewActive(bookID, borrowerID uuid.UUID, checkedOutAt time.Time) (*Active, error) {
	if bookID == uuid.Nil {
		return nil, ErrMissingBook
	}
	if borrowerID == uuid.Nil {
		return nil, ErrMissingBorrower
	}
	if checkedOutAt.IsZero() {
		return nil, ErrMissingTimestamp
	}

	return &Active{
		id:           uuid.New(),
		bookID:       bookID,
		borrowerID:   borrowerID,
		checkedOutAt: checkedOutAt,
	}, nil
}

func ReconstructActive(id, bookID, borrowerID uuid.UUID, checkedOutAt time.Time) *Active {
	return &Active{
		id:           id,
		bookID:       bookID,
		borrowerID:   borrowerID,
		checkedOutAt: checkedOutAt,
	}
}

func (a *Active) ID() uuid.UUID           { return a.id }
func (a *Active) BookID() uuid.UUID       { return a.bookID }
func (a *Active) BorrowerID() uuid.UUID   { return a.borrowerID }
func (a *Active) CheckedOutAt() time.Time { return a.checkedOutAt }

// Matches reports whether a return request targets this exact loan. A
// mismatch means the caller is acting on stale state, e.g. the book was
// already returned and checked out again by someone else.
func (a *Active) Matches(checkoutID, borrowerID uuid.UUID) bool {
	return a.id == checkoutID && a.borrowerID == borrowerID
}

// Archive transitions the loan to its completed form. The transition is
// one-way: an Archived record is never mutated and never becomes Active
// again.
func (a *Active) Archive(returnedAt time.Time) (*Archived, error) {
	if returnedAt.IsZero() {
		return nil, ErrMissingTimestamp
	}
	if returnedAt.Before(a.checkedOutAt) {
		return nil, ErrReturnedBeforeCheckout
	}

	return &Archived{
		id:           a.id,
		bookID:       a.bookID,
		borrowerID:   a.borrowerID,
		checkedOutAt: a.checkedOutAt,
		returnedAt:   returnedAt,
	}, nil
}

// Archived is the immutable historical record of a completed loan.
type Archived struct {
	id           uuid.UUID
	bookID       uuid.UUID
	borrowerID   uuid.UUID
	checkedOutAt time.Time
	returnedAt   time.Time
}

func (r *Archived) ID() uuid.UUID           { return r.id }
func (r *Archived) BookID() uuid.UUID       { return r.bookID }
func (r *Archived) BorrowerID() uuid.UUID   { return r.borrowerID }
func (r *Archived) CheckedOutAt() time.Time { return r.checkedOutAt }
func (r *Archived) ReturnedAt() time.Time   { return r.returnedAt }
