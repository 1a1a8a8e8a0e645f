package readstore

import (
	"context"

	"book-lender/internal/infra"
	"book-lender/internal/infra/db"
	"book-lender/internal/pkg/pgconv"
	"book-lender/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// CheckoutReadStore reconstructs loan views from the two ledger tables.
// Methods take an explicit DBTX so the query usecase can run them on the pool
// or inside a read-only snapshot transaction.
type CheckoutReadStore struct{}

func NewCheckoutReadStore() *CheckoutReadStore {
	return &CheckoutReadStore{}
}

const unreturnedBaseQuery = `
	SELECT
		c.checkout_id,
		c.book_id,
		c.borrower_id,
		c.checked_out_at,
		b.title,
		b.author,
		b.isbn
	FROM checkouts AS c
	INNER JOIN books AS b ON b.id = c.book_id
`

func (s *CheckoutReadStore) FindUnreturnedAll(ctx context.Context, dbtx db.DBTX) ([]queries.CheckoutView, error) {
	rows, err := dbtx.Query(ctx, unreturnedBaseQuery+` ORDER BY c.checked_out_at DESC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list unreturned checkouts", err)
	}
	return scanActiveRows(rows)
}

func (s *CheckoutReadStore) FindUnreturnedByBorrower(ctx context.Context, dbtx db.DBTX, borrowerID uuid.UUID) ([]queries.CheckoutView, error) {
	rows, err := dbtx.Query(ctx, unreturnedBaseQuery+` WHERE c.borrower_id = $1 ORDER BY c.checked_out_at DESC`, borrowerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list unreturned checkouts by borrower", err)
	}
	return scanActiveRows(rows)
}

// FindUnreturnedByBook returns nil without error when the book has no active
// loan; absence is a normal answer here, not a failure.
func (s *CheckoutReadStore) FindUnreturnedByBook(ctx context.Context, dbtx db.DBTX, bookID uuid.UUID) (*queries.CheckoutView, error) {
	row := dbtx.QueryRow(ctx, unreturnedBaseQuery+` WHERE c.book_id = $1`, bookID)

	view, err := scanActiveRow(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find unreturned checkout by book", err)
	}
	return view, nil
}

const returnedByBookQuery = `
	SELECT
		rc.checkout_id,
		rc.book_id,
		rc.borrower_id,
		rc.checked_out_at,
		rc.returned_at,
		b.title,
		b.author,
		b.isbn
	FROM returned_checkouts AS rc
	INNER JOIN books AS b ON b.id = rc.book_id
	WHERE rc.book_id = $1
	ORDER BY rc.checked_out_at DESC
`

func (s *CheckoutReadStore) FindReturnedByBook(ctx context.Context, dbtx db.DBTX, bookID uuid.UUID) ([]queries.CheckoutView, error) {
	rows, err := dbtx.Query(ctx, returnedByBookQuery, bookID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list returned checkouts by book", err)
	}
	defer rows.Close()

	var result []queries.CheckoutView
	for rows.Next() {
		var (
			v          queries.CheckoutView
			checkedOut pgtype.Timestamptz
			returned   pgtype.Timestamptz
		)
		if err := rows.Scan(&v.ID, &v.BookID, &v.BorrowerID, &checkedOut, &returned, &v.BookTitle, &v.BookAuthor, &v.BookISBN); err != nil {
			return nil, infra.WrapRepoErr("failed to scan returned checkout row", err)
		}
		v.CheckedOutAt = pgconv.TimeFromPgtype(checkedOut)
		v.ReturnedAt = pgconv.TimePtrFromPgtype(returned)
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate returned checkout rows", err)
	}
	return result, nil
}

func scanActiveRows(rows pgx.Rows) ([]queries.CheckoutView, error) {
	defer rows.Close()

	var result []queries.CheckoutView
	for rows.Next() {
		view, err := scanActiveRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan checkout row", err)
		}
		result = append(result, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate checkout rows", err)
	}
	return result, nil
}

func scanActiveRow(row pgx.Row) (*queries.CheckoutView, error) {
	var (
		v          queries.CheckoutView
		checkedOut pgtype.Timestamptz
	)
	if err := row.Scan(&v.ID, &v.BookID, &v.BorrowerID, &checkedOut, &v.BookTitle, &v.BookAuthor, &v.BookISBN); err != nil {
		return nil, err
	}
	v.CheckedOutAt = pgconv.TimeFromPgtype(checkedOut)
	return &v, nil
}
