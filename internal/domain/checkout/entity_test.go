//go:build unit

package checkout_test

import (
	"testing"
	"time"

	"book-lender/internal/domain/checkout"
	"book-lender/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.CheckoutBuilder)
	errIs  error
}

func TestActive(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewCheckoutBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.False(t, actual.CheckedOutAt().IsZero())
	})

	t.Run("field validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "missing book",
				mutate: func(b *builder.CheckoutBuilder) { b.WithBookID(uuid.Nil) },
				errIs:  checkout.ErrMissingBook,
			},
			{
				name:   "missing borrower",
				mutate: func(b *builder.CheckoutBuilder) { b.WithBorrowerID(uuid.Nil) },
				errIs:  checkout.ErrMissingBorrower,
			},
			{
				name:   "missing timestamp",
				mutate: func(b *builder.CheckoutBuilder) { b.WithCheckedOutAt(time.Time{}) },
				errIs:  checkout.ErrMissingTimestamp,
			},
		})
	})

	t.Run("UUID uniqueness", func(t *testing.T) {
		b := builder.NewCheckoutBuilder()
		first, err1 := b.BuildDomain()
		second, err2 := b.BuildDomain()

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, first.ID(), second.ID())
	})
}

func TestMatches(t *testing.T) {
	b := builder.NewCheckoutBuilder()
	active := b.BuildReconstructed()

	t.Run("matching identity", func(t *testing.T) {
		assert.True(t, active.Matches(b.CheckoutID, b.BorrowerID))
	})

	t.Run("wrong checkout id", func(t *testing.T) {
		assert.False(t, active.Matches(uuid.New(), b.BorrowerID))
	})

	t.Run("wrong borrower id", func(t *testing.T) {
		assert.False(t, active.Matches(b.CheckoutID, uuid.New()))
	})
}

func TestArchive(t *testing.T) {
	b := builder.NewCheckoutBuilder()
	active := b.BuildReconstructed()

	t.Run("archives with returned timestamp", func(t *testing.T) {
		returnedAt := b.CheckedOutAt.Add(72 * time.Hour)
		archived, err := active.Archive(returnedAt)
		require.NoError(t, err)
		require.NotNil(t, archived)

		assert.Equal(t, active.ID(), archived.ID())
		assert.Equal(t, active.BookID(), archived.BookID())
		assert.Equal(t, active.BorrowerID(), archived.BorrowerID())
		assert.Equal(t, active.CheckedOutAt(), archived.CheckedOutAt())
		assert.Equal(t, returnedAt, archived.ReturnedAt())
	})

	t.Run("same-instant return is allowed", func(t *testing.T) {
		archived, err := active.Archive(b.CheckedOutAt)
		require.NoError(t, err)
		assert.Equal(t, b.CheckedOutAt, archived.ReturnedAt())
	})

	t.Run("rejects return before checkout", func(t *testing.T) {
		archived, err := active.Archive(b.CheckedOutAt.Add(-time.Minute))
		require.Nil(t, archived)
		require.ErrorIs(t, err, checkout.ErrReturnedBeforeCheckout)
	})

	t.Run("rejects zero returned timestamp", func(t *testing.T) {
		archived, err := active.Archive(time.Time{})
		require.Nil(t, archived)
		require.ErrorIs(t, err, checkout.ErrMissingTimestamp)
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewCheckoutBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
