package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side). Book metadata is denormalized into every
// row by joining the catalog at read time, so history responses need no
// second round-trip.
type CheckoutView struct {
	ID           uuid.UUID  `json:"id"`
	BookID       uuid.UUID  `json:"book_id"`
	BorrowerID   uuid.UUID  `json:"borrower_id"`
	CheckedOutAt time.Time  `json:"checked_out_at"`
	ReturnedAt   *time.Time `json:"returned_at,omitempty"`
	BookTitle    string     `json:"book_title"`
	BookAuthor   string     `json:"book_author"`
	BookISBN     string     `json:"book_isbn"`
}

func (v *CheckoutView) Returned() bool {
	return v.ReturnedAt != nil
}
