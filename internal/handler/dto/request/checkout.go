package request

import (
	"time"

	"github.com/google/uuid"
)

// CheckOutRequest lends a book. The book comes from the URL; a zero CheckedOutAt
// lets the server stamp the time.
type CheckOutRequest struct {
	BorrowerID   uuid.UUID  `json:"borrower_id" binding:"required"`
	CheckedOutAt *time.Time `json:"checked_out_at,omitempty"`
}

func (r CheckOutRequest) CheckedOutTime() time.Time {
	if r.CheckedOutAt == nil {
		return time.Time{}
	}
	return *r.CheckedOutAt
}

type ReturnRequest struct {
	BorrowerID uuid.UUID  `json:"borrower_id" binding:"required"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

func (r ReturnRequest) ReturnedTime() time.Time {
	if r.ReturnedAt == nil {
		return time.Time{}
	}
	return *r.ReturnedAt
}
