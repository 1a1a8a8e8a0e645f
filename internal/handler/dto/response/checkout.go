package response

import (
	"time"

	"book-lender/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CheckoutCreatedResponse struct {
	CheckoutID uuid.UUID `json:"checkout_id"`
}

type CheckoutResponse struct {
	ID           uuid.UUID  `json:"id"`
	BookID       uuid.UUID  `json:"book_id"`
	BorrowerID   uuid.UUID  `json:"borrower_id"`
	CheckedOutAt time.Time  `json:"checked_out_at"`
	ReturnedAt   *time.Time `json:"returned_at,omitempty"`
	BookTitle    string     `json:"book_title"`
	BookAuthor   string     `json:"book_author"`
	BookISBN     string     `json:"book_isbn"`
	Returned     bool       `json:"returned"`
}

func FromCheckoutView(view *queries.CheckoutView) *CheckoutResponse {
	resp := &CheckoutResponse{}
	// field names line up with the view, only Returned is derived
	_ = copier.Copy(resp, view)
	resp.Returned = view.Returned()
	return resp
}

func FromCheckoutViews(views []queries.CheckoutView) []*CheckoutResponse {
	resp := make([]*CheckoutResponse, len(views))
	for i := range views {
		resp[i] = FromCheckoutView(&views[i])
	}
	return resp
}
