//go:build unit || e2e

package builder

import (
	"time"

	domcheckout "book-lender/internal/domain/checkout"
	reqdto "book-lender/internal/handler/dto/request"
	"book-lender/internal/usecase/queries"
	"book-lender/internal/usecase/shared"

	"github.com/google/uuid"
)

type CheckoutBuilder struct {
	CheckoutID   uuid.UUID
	BookID       uuid.UUID
	BorrowerID   uuid.UUID
	CheckedOutAt time.Time
	ReturnedAt   *time.Time
	BookTitle    string
	BookAuthor   string
	BookISBN     string
}

func NewCheckoutBuilder() *CheckoutBuilder {
	return &CheckoutBuilder{
		CheckoutID:   uuid.New(),
		BookID:       uuid.New(),
		BorrowerID:   uuid.New(),
		CheckedOutAt: time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC),
		BookTitle:    "Test Book",
		BookAuthor:   "Test Author",
		BookISBN:     "978-4-0000-0000-0",
	}
}

func (b *CheckoutBuilder) With(mutate func(*CheckoutBuilder)) *CheckoutBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *CheckoutBuilder) BuildDomain() (*domcheckout.Active, error) {
	return domcheckout.NewActive(b.BookID, b.BorrowerID, b.CheckedOutAt)
}

func (b *CheckoutBuilder) BuildReconstructed() *domcheckout.Active {
	return domcheckout.ReconstructActive(b.CheckoutID, b.BookID, b.BorrowerID, b.CheckedOutAt)
}

func (b *CheckoutBuilder) BuildCheckOutRequestDTO() reqdto.CheckOutRequest {
	t := b.CheckedOutAt
	return reqdto.CheckOutRequest{
		BorrowerID:   b.BorrowerID,
		CheckedOutAt: &t,
	}
}

func (b *CheckoutBuilder) BuildReturnRequestDTO() reqdto.ReturnRequest {
	return reqdto.ReturnRequest{
		BorrowerID: b.BorrowerID,
		ReturnedAt: b.ReturnedAt,
	}
}

func (b *CheckoutBuilder) BuildView() *queries.CheckoutView {
	return &queries.CheckoutView{
		ID:           b.CheckoutID,
		BookID:       b.BookID,
		BorrowerID:   b.BorrowerID,
		CheckedOutAt: b.CheckedOutAt,
		ReturnedAt:   b.ReturnedAt,
		BookTitle:    b.BookTitle,
		BookAuthor:   b.BookAuthor,
		BookISBN:     b.BookISBN,
	}
}

func (b *CheckoutBuilder) BuildLoanState() *shared.LoanState {
	return &shared.LoanState{
		BookID: b.BookID,
		Active: &shared.ActiveLoan{
			CheckoutID:   b.CheckoutID,
			BorrowerID:   b.BorrowerID,
			CheckedOutAt: b.CheckedOutAt,
		},
	}
}

func (b *CheckoutBuilder) BuildAvailableLoanState() *shared.LoanState {
	return &shared.LoanState{BookID: b.BookID}
}

// Fluent builder methods
func (b *CheckoutBuilder) WithCheckoutID(id uuid.UUID) *CheckoutBuilder {
	b.CheckoutID = id
	return b
}

func (b *CheckoutBuilder) WithBookID(bookID uuid.UUID) *CheckoutBuilder {
	b.BookID = bookID
	return b
}

func (b *CheckoutBuilder) WithBorrowerID(borrowerID uuid.UUID) *CheckoutBuilder {
	b.BorrowerID = borrowerID
	return b
}

func (b *CheckoutBuilder) WithCheckedOutAt(t time.Time) *CheckoutBuilder {
	b.CheckedOutAt = t
	return b
}

func (b *CheckoutBuilder) WithBookTitle(title string) *CheckoutBuilder {
	b.BookTitle = title
	return b
}

func (b *CheckoutBuilder) AsReturned(returnedAt time.Time) *CheckoutBuilder {
	b.ReturnedAt = &returnedAt
	return b
}
