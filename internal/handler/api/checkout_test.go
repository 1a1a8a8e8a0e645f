//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"book-lender/internal/handler/api"
	resdto "book-lender/internal/handler/dto/response"
	"book-lender/internal/usecase/commands"
	"book-lender/internal/usecase/queries"
	"book-lender/tests/common/builder"
	"book-lender/tests/common/helper"
	"book-lender/tests/common/httptest"
	"book-lender/tests/common/testutil"
	commandsmock "book-lender/tests/mock/commands"
	queriesmock "book-lender/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckoutHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCheckoutCommands
	mockQueries  *queriesmock.MockCheckoutQueries
	handler      *api.CheckoutHandler
}

func (s *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCheckoutQueries(s.mockCtrl)
	s.handler = api.NewCheckoutHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/books/:book_id/checkouts", s.handler.CheckOut)
	s.router.PUT("/books/:book_id/checkouts/:checkout_id/returned", s.handler.Return)
	s.router.GET("/books/:book_id/checkout-history", s.handler.GetBookHistory)
	s.router.GET("/checkouts", s.handler.ListUnreturned)
	s.router.GET("/users/:user_id/checkouts", s.handler.ListUnreturnedByUser)
}

func (s *CheckoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}

// ================================================================================
// TestCheckOut
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestCheckOut() {
	b := builder.NewCheckoutBuilder()
	url := "/books/" + b.BookID.String() + "/checkouts"
	reqBody := b.BuildCheckOutRequestDTO()

	s.Run("success: returns 201 Created with checkout id", func() {
		s.mockCommands.EXPECT().CheckOut(gomock.Any(), b.BookID, b.BorrowerID, b.CheckedOutAt).
			Return(b.CheckoutID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var response resdto.CheckoutCreatedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(b.CheckoutID, response.CheckoutID)
	})

	s.Run("success: omitted timestamp is passed through as zero", func() {
		s.mockCommands.EXPECT().CheckOut(gomock.Any(), b.BookID, b.BorrowerID, time.Time{}).
			Return(b.CheckoutID, nil).Times(1)

		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("checked_out_at", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 Bad Request for invalid book UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/books/invalid-uuid/checkouts", reqBody)
		helper.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid book ID")
	})

	s.Run("error: 400 Bad Request for missing borrower_id", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("borrower_id", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap)
		helper.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "book not found",
				commandsError:  commands.ErrBookNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Book not found",
			},
			{
				name:           "already checked out",
				commandsError:  commands.ErrAlreadyCheckedOut,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already checked out",
			},
			{
				name:           "serialization conflict",
				commandsError:  commands.ErrCheckoutConflict,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "please retry",
			},
			{
				name:           "domain validation",
				commandsError:  commands.ErrDomainValidation,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Domain validation failed",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CheckOut(gomock.Any(), b.BookID, b.BorrowerID, b.CheckedOutAt).
					Return(uuid.Nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
				helper.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestReturn
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestReturn() {
	b := builder.NewCheckoutBuilder()
	returnedAt := b.CheckedOutAt.Add(48 * time.Hour)
	b.AsReturned(returnedAt)
	url := "/books/" + b.BookID.String() + "/checkouts/" + b.CheckoutID.String() + "/returned"
	reqBody := b.BuildReturnRequestDTO()

	s.Run("success: returns 200 OK", func() {
		s.mockCommands.EXPECT().Return(gomock.Any(), b.CheckoutID, b.BookID, b.BorrowerID, returnedAt).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody)

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("returned", body["status"])
	})

	s.Run("error: 400 Bad Request for invalid checkout UUID", func() {
		badURL := "/books/" + b.BookID.String() + "/checkouts/invalid-uuid/returned"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, badURL, reqBody)
		helper.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid checkout ID")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "book not found",
				commandsError:  commands.ErrBookNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Book not found",
			},
			{
				name:           "no active checkout",
				commandsError:  commands.ErrNoActiveCheckout,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "No active checkout",
			},
			{
				name:           "checkout mismatch",
				commandsError:  commands.ErrCheckoutMismatch,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "does not match",
			},
			{
				name:           "serialization conflict",
				commandsError:  commands.ErrCheckoutConflict,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "please retry",
			},
			{
				name:           "domain validation",
				commandsError:  commands.ErrDomainValidation,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Domain validation failed",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Return(gomock.Any(), b.CheckoutID, b.BookID, b.BorrowerID, returnedAt).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody)
				helper.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGetBookHistory
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestGetBookHistory() {
	bookID := uuid.New()
	url := "/books/" + bookID.String() + "/checkout-history"

	active := builder.NewCheckoutBuilder().WithBookID(bookID).BuildView()
	archived := builder.NewCheckoutBuilder().WithBookID(bookID).
		AsReturned(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)).BuildView()
	history := []queries.CheckoutView{*active, *archived}

	s.Run("success: returns history with active loan first", func() {
		s.mockQueries.EXPECT().FindHistoryByBook(gomock.Any(), bookID).
			Return(history, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		var response []resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.False(response[0].Returned)
		s.True(response[1].Returned)
	})

	s.Run("success: empty history for never-lent book", func() {
		s.mockQueries.EXPECT().FindHistoryByBook(gomock.Any(), bookID).
			Return([]queries.CheckoutView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		var response []resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response)
	})

	s.Run("error: 400 Bad Request for invalid book UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/books/invalid-uuid/checkout-history", nil)
		helper.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid book ID")
	})

	s.Run("error: 404 Not Found for missing book", func() {
		s.mockQueries.EXPECT().FindHistoryByBook(gomock.Any(), bookID).
			Return(nil, queries.ErrBookNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)
		helper.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Book not found")
	})

	s.Run("error: 500 Internal Server Error on query failure", func() {
		s.mockQueries.EXPECT().FindHistoryByBook(gomock.Any(), bookID).
			Return(nil, queries.ErrQueryFailed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)
		helper.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestListUnreturned
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestListUnreturned() {
	url := "/checkouts"

	views := []queries.CheckoutView{
		*builder.NewCheckoutBuilder().BuildView(),
		*builder.NewCheckoutBuilder().BuildView(),
	}

	s.Run("success: returns all active checkouts", func() {
		s.mockQueries.EXPECT().ListUnreturned(gomock.Any()).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		var response []resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
	})

	s.Run("error: 500 Internal Server Error on query failure", func() {
		s.mockQueries.EXPECT().ListUnreturned(gomock.Any()).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)
		helper.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestListUnreturnedByUser
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestListUnreturnedByUser() {
	userID := uuid.New()
	url := "/users/" + userID.String() + "/checkouts"

	views := []queries.CheckoutView{
		*builder.NewCheckoutBuilder().WithBorrowerID(userID).BuildView(),
	}

	s.Run("success: returns the user's active checkouts", func() {
		s.mockQueries.EXPECT().ListUnreturnedByBorrower(gomock.Any(), userID).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		var response []resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
		s.Equal(userID, response[0].BorrowerID)
	})

	s.Run("error: 400 Bad Request for invalid user UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users/invalid-uuid/checkouts", nil)
		helper.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid user ID")
	})
}
