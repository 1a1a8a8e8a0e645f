package readstore

import (
	"context"

	"book-lender/internal/infra"
	"book-lender/internal/infra/db"

	"github.com/google/uuid"
)

// BookReadStore is the catalog boundary the ledger's read side needs: book
// existence only. Metadata comes denormalized through the checkout joins.
type BookReadStore struct{}

func NewBookReadStore() *BookReadStore {
	return &BookReadStore{}
}

func (s *BookReadStore) Exists(ctx context.Context, dbtx db.DBTX, bookID uuid.UUID) (bool, error) {
	var exists bool
	err := dbtx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, bookID).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check book existence", err)
	}
	return exists, nil
}
