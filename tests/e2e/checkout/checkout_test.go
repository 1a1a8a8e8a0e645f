//go:build e2e

package checkout_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"book-lender/internal/handler/dto/request"
	"book-lender/internal/handler/dto/response"
	"book-lender/tests/common/dbtest"
	"book-lender/tests/common/httptest"
	"book-lender/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	checkOutURL      = "/api/books/%s/checkouts"
	returnURL        = "/api/books/%s/checkouts/%s/returned"
	historyURL       = "/api/books/%s/checkout-history"
	allCheckoutsURL  = "/api/checkouts"
	userCheckoutsURL = "/api/users/%s/checkouts"
)

type CheckoutSuite struct {
	e2e.SharedSuite
}

func (s *CheckoutSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestCheckoutSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(CheckoutSuite))
}

func (s *CheckoutSuite) checkOut(t *testing.T, bookID, borrowerID uuid.UUID, at time.Time) string {
	t.Helper()

	reqBody := request.CheckOutRequest{BorrowerID: borrowerID, CheckedOutAt: &at}
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(checkOutURL, bookID), reqBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.CheckoutCreatedResponse
	err := httptest.DecodeResponseBody(t, w.Body, &created)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.CheckoutID)
	return created.CheckoutID.String()
}

// =============================================================================
// TestCheckOut - Checkout creation API tests
// =============================================================================

func (s *CheckoutSuite) TestCheckOut() {
	s.Run("Normal case: book can be checked out", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner", "owner1@example.com")
		borrowerID := dbtest.CreateTestUser(t, s.DB, "borrower", "borrower1@example.com")
		bookID := dbtest.CreateTestBook(t, s.DB, "Checkout Target", ownerID)

		s.checkOut(t, bookID, borrowerID, time.Now().UTC())

		// the book now shows up in the active checkout list
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, allCheckoutsURL, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var active []response.CheckoutResponse
		err := httptest.DecodeResponseBody(t, w.Body, &active)
		require.NoError(t, err)
		require.Len(t, active, 1)
		require.Equal(t, bookID, active[0].BookID)
		require.Equal(t, borrowerID, active[0].BorrowerID)
		require.False(t, active[0].Returned)
	})

	s.Run("Normal case: omitted timestamp is stamped by the server", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner", "owner2@example.com")
		borrowerID := dbtest.CreateTestUser(t, s.DB, "borrower", "borrower2@example.com")
		bookID := dbtest.CreateTestBook(t, s.DB, "Server Time Book", ownerID)

		reqBody := request.CheckOutRequest{BorrowerID: borrowerID}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(checkOutURL, bookID), reqBody)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		hw := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(historyURL, bookID), nil)
		require.Equal(t, http.StatusOK, hw.Code)

		var history []response.CheckoutResponse
		err := httptest.DecodeResponseBody(t, hw.Body, &history)
		require.NoError(t, err)
		require.Len(t, history, 1)
		require.WithinDuration(t, time.Now().UTC(), history[0].CheckedOutAt, time.Minute)
	})

	s.Run("Error case: second checkout of the same book conflicts", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner", "owner3@example.com")
		borrower1 := dbtest.CreateTestUser(t, s.DB, "first", "first3@example.com")
		borrower2 := dbtest.CreateTestUser(t, s.DB, "second", "second3@example.com")
		bookID := dbtest.CreateTestBook(t, s.DB, "Contested Book", ownerID)

		s.checkOut(t, bookID, borrower1, time.Now().UTC())

		at := time.Now().UTC()
		reqBody := request.CheckOutRequest{BorrowerID: borrower2, CheckedOutAt: &at}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(checkOutURL, bookID), reqBody)
		require.Equal(t, http.StatusConflict, w.Code, "Second checkout must be rejected")
	})

	s.Run("Error case: unknown book returns 404", func() {
		t := s.T()

		borrowerID := dbtest.CreateTestUser(t, s.DB, "borrower", "borrower4@example.com")
		at := time.Now().UTC()
		reqBody := request.CheckOutRequest{BorrowerID: borrowerID, CheckedOutAt: &at}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(checkOutURL, uuid.New()), reqBody)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	s.Run("Concurrency: exactly one of N racing checkouts wins", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner", "owner5@example.com")
		bookID := dbtest.CreateTestBook(t, s.DB, "Race Book", ownerID)

		const racers = 8
		borrowers := make([]uuid.UUID, racers)
		for i := range borrowers {
			borrowers[i] = dbtest.CreateTestUser(t, s.DB, fmt.Sprintf("racer%d", i), fmt.Sprintf("racer%d@example.com", i))
		}

		codes := make([]int, racers)
		var wg sync.WaitGroup
		for i := range racers {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				at := time.Now().UTC()
				reqBody := request.CheckOutRequest{BorrowerID: borrowers[i], CheckedOutAt: &at}
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(checkOutURL, bookID), reqBody)
				codes[i] = w.Code
			}(i)
		}
		wg.Wait()

		created, conflicted := 0, 0
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicted++
			default:
				t.Fatalf("unexpected status %d", code)
			}
		}
		require.Equal(t, 1, created, "exactly one racer may win")
		require.Equal(t, racers-1, conflicted)

		// and the ledger agrees
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(historyURL, bookID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		var history []response.CheckoutResponse
		err := httptest.DecodeResponseBody(t, w.Body, &history)
		require.NoError(t, err)
		require.Len(t, history, 1)
	})
}

// =============================================================================
// TestReturn - Return API tests
// =============================================================================

func (s *CheckoutSuite) TestReturn() {
	s.Run("Normal case: checkout and return round trip", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner", "rt-owner@example.com")
		borrowerID := dbtest.CreateTestUser(t, s.DB, "borrower", "rt-borrower@example.com")
		bookID := dbtest.CreateTestBook(t, s.DB, "Round Trip Book", ownerID)

		checkedOutAt := time.Now().UTC().Add(-48 * time.Hour).Truncate(time.Microsecond)
		returnedAt := checkedOutAt.Add(24 * time.Hour)
		checkoutID := s.checkOut(t, bookID, borrowerID, checkedOutAt)

		reqBody := request.ReturnRequest{BorrowerID: borrowerID, ReturnedAt: &returnedAt}
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(returnURL, bookID, checkoutID), reqBody)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		// archived record carries both timestamps
		hw := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(historyURL, bookID), nil)
		require.Equal(t, http.StatusOK, hw.Code)

		var history []response.CheckoutResponse
		err := httptest.DecodeResponseBody(t, hw.Body, &history)
		require.NoError(t, err)
		require.Len(t, history, 1)

		expected := &response.CheckoutResponse{
			BookID:       bookID,
			BorrowerID:   borrowerID,
			CheckedOutAt: checkedOutAt,
			ReturnedAt:   &returnedAt,
			BookTitle:    "Round Trip Book",
			Returned:     true,
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.CheckoutResponse{}, "ID", "BookAuthor", "BookISBN"),
		}
		if diff := cmp.Diff(expected, &history[0], opts...); diff != "" {
			t.Errorf("Archived checkout mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Error case: double return yields 404", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner", "dr-owner@example.com")
		borrowerID := dbtest.CreateTestUser(t, s.DB, "borrower", "dr-borrower@example.com")
		bookID := dbtest.CreateTestBook(t, s.DB, "Double Return Book", ownerID)

		checkedOutAt := time.Now().UTC().Add(-time.Hour)
		returnedAt := time.Now().UTC()
		checkoutID := s.checkOut(t, bookID, borrowerID, checkedOutAt)

		reqBody := request.ReturnRequest{BorrowerID: borrowerID, ReturnedAt: &returnedAt}
		url := fmt.Sprintf(returnURL, bookID, checkoutID)

		w1 := httptest.PerformRequest(t, s.Router, http.MethodPut, url, reqBody)
		require.Equal(t, http.StatusOK, w1.Code)

		w2 := httptest.PerformRequest(t, s.Router, http.MethodPut, url, reqBody)
		require.Equal(t, http.StatusNotFound, w2.Code, "Returning twice must not be replayed")
	})

	s.Run("Error case: wrong borrower conflicts", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner", "wb-owner@example.com")
		borrowerID := dbtest.CreateTestUser(t, s.DB, "borrower", "wb-borrower@example.com")
		strangerID := dbtest.CreateTestUser(t, s.DB, "stranger", "wb-stranger@example.com")
		bookID := dbtest.CreateTestBook(t, s.DB, "Wrong Borrower Book", ownerID)

		checkoutID := s.checkOut(t, bookID, borrowerID, time.Now().UTC())

		returnedAt := time.Now().UTC()
		reqBody := request.ReturnRequest{BorrowerID: strangerID, ReturnedAt: &returnedAt}
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(returnURL, bookID, checkoutID), reqBody)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	s.Run("Error case: stale checkout id conflicts after re-checkout", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner", "st-owner@example.com")
		firstID := dbtest.CreateTestUser(t, s.DB, "first", "st-first@example.com")
		secondID := dbtest.CreateTestUser(t, s.DB, "second", "st-second@example.com")
		bookID := dbtest.CreateTestBook(t, s.DB, "Stale Handle Book", ownerID)

		checkedOutAt := time.Now().UTC().Add(-2 * time.Hour)
		returnedAt := checkedOutAt.Add(time.Hour)
		staleCheckoutID := s.checkOut(t, bookID, firstID, checkedOutAt)

		// return and immediately lend to someone else
		reqBody := request.ReturnRequest{BorrowerID: firstID, ReturnedAt: &returnedAt}
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(returnURL, bookID, staleCheckoutID), reqBody)
		require.Equal(t, http.StatusOK, w.Code)
		s.checkOut(t, bookID, secondID, time.Now().UTC())

		// the stale handle must not return the new loan
		lateReturn := time.Now().UTC()
		staleReq := request.ReturnRequest{BorrowerID: firstID, ReturnedAt: &lateReturn}
		sw := httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(returnURL, bookID, staleCheckoutID), staleReq)
		require.Equal(t, http.StatusConflict, sw.Code)
	})

	s.Run("Error case: return before checkout is rejected", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner", "rb-owner@example.com")
		borrowerID := dbtest.CreateTestUser(t, s.DB, "borrower", "rb-borrower@example.com")
		bookID := dbtest.CreateTestBook(t, s.DB, "Time Travel Book", ownerID)

		checkedOutAt := time.Now().UTC()
		checkoutID := s.checkOut(t, bookID, borrowerID, checkedOutAt)

		badReturn := checkedOutAt.Add(-time.Hour)
		reqBody := request.ReturnRequest{BorrowerID: borrowerID, ReturnedAt: &badReturn}
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(returnURL, bookID, checkoutID), reqBody)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

// =============================================================================
// TestCheckoutHistory - History API tests
// =============================================================================

func (s *CheckoutSuite) TestCheckoutHistory() {
	s.Run("Normal case: active loan first, archived newest first", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner", "h-owner@example.com")
		borrowerID := dbtest.CreateTestUser(t, s.DB, "borrower", "h-borrower@example.com")
		bookID := dbtest.CreateTestBook(t, s.DB, "History Book", ownerID)

		// three completed cycles, then one outstanding loan
		base := time.Now().UTC().Add(-240 * time.Hour).Truncate(time.Microsecond)
		for i := range 3 {
			checkedOutAt := base.Add(time.Duration(i) * 48 * time.Hour)
			returnedAt := checkedOutAt.Add(24 * time.Hour)
			checkoutID := s.checkOut(t, bookID, borrowerID, checkedOutAt)

			reqBody := request.ReturnRequest{BorrowerID: borrowerID, ReturnedAt: &returnedAt}
			w := httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(returnURL, bookID, checkoutID), reqBody)
			require.Equal(t, http.StatusOK, w.Code)
		}
		s.checkOut(t, bookID, borrowerID, time.Now().UTC())

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(historyURL, bookID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var history []response.CheckoutResponse
		err := httptest.DecodeResponseBody(t, w.Body, &history)
		require.NoError(t, err)
		require.Len(t, history, 4)

		require.False(t, history[0].Returned, "Active loan must come first")
		for i := 1; i < len(history); i++ {
			require.True(t, history[i].Returned)
		}
		for i := 1; i < len(history)-1; i++ {
			require.True(t, history[i].CheckedOutAt.After(history[i+1].CheckedOutAt),
				"Archived loans must be ordered newest first")
		}
	})

	s.Run("Normal case: never-lent book has empty history", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner", "e-owner@example.com")
		bookID := dbtest.CreateTestBook(t, s.DB, "Untouched Book", ownerID)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(historyURL, bookID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var history []response.CheckoutResponse
		err := httptest.DecodeResponseBody(t, w.Body, &history)
		require.NoError(t, err)
		require.Empty(t, history)
	})

	s.Run("Error case: unknown book returns 404", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(historyURL, uuid.New()), nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// =============================================================================
// TestListCheckouts - Active checkout listing API tests
// =============================================================================

func (s *CheckoutSuite) TestListCheckouts() {
	s.Run("Normal case: per-user listing only shows that user's loans", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner", "l-owner@example.com")
		aliceID := dbtest.CreateTestUser(t, s.DB, "alice", "l-alice@example.com")
		bobID := dbtest.CreateTestUser(t, s.DB, "bob", "l-bob@example.com")

		book1 := dbtest.CreateTestBook(t, s.DB, "Alice Book 1", ownerID)
		book2 := dbtest.CreateTestBook(t, s.DB, "Alice Book 2", ownerID)
		book3 := dbtest.CreateTestBook(t, s.DB, "Bob Book", ownerID)

		s.checkOut(t, book1, aliceID, time.Now().UTC())
		s.checkOut(t, book2, aliceID, time.Now().UTC())
		s.checkOut(t, book3, bobID, time.Now().UTC())

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(userCheckoutsURL, aliceID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var aliceLoans []response.CheckoutResponse
		err := httptest.DecodeResponseBody(t, w.Body, &aliceLoans)
		require.NoError(t, err)
		require.Len(t, aliceLoans, 2)
		for _, loan := range aliceLoans {
			require.Equal(t, aliceID, loan.BorrowerID)
		}

		aw := httptest.PerformRequest(t, s.Router, http.MethodGet, allCheckoutsURL, nil)
		require.Equal(t, http.StatusOK, aw.Code)
		var all []response.CheckoutResponse
		err = httptest.DecodeResponseBody(t, aw.Body, &all)
		require.NoError(t, err)
		require.Len(t, all, 3)
	})

	s.Run("Normal case: returned books drop out of active listings", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner", "d-owner@example.com")
		borrowerID := dbtest.CreateTestUser(t, s.DB, "borrower", "d-borrower@example.com")
		bookID := dbtest.CreateTestBook(t, s.DB, "Short Loan Book", ownerID)

		checkoutID := s.checkOut(t, bookID, borrowerID, time.Now().UTC().Add(-time.Hour))

		returnedAt := time.Now().UTC()
		reqBody := request.ReturnRequest{BorrowerID: borrowerID, ReturnedAt: &returnedAt}
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(returnURL, bookID, checkoutID), reqBody)
		require.Equal(t, http.StatusOK, w.Code)

		aw := httptest.PerformRequest(t, s.Router, http.MethodGet, allCheckoutsURL, nil)
		require.Equal(t, http.StatusOK, aw.Code)
		var all []response.CheckoutResponse
		err := httptest.DecodeResponseBody(t, aw.Body, &all)
		require.NoError(t, err)
		require.Empty(t, all)
	})
}
