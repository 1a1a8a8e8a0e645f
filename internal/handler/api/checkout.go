package api

import (
	"errors"
	"net/http"

	reqdto "book-lender/internal/handler/dto/request"
	resdto "book-lender/internal/handler/dto/response"
	"book-lender/internal/pkg/metrics"
	"book-lender/internal/usecase/commands"
	"book-lender/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	checkoutCommands commands.CheckoutCommands
	checkoutQueries  queries.CheckoutQueries
}

func NewCheckoutHandler(checkoutCommands commands.CheckoutCommands, checkoutQueries queries.CheckoutQueries) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutCommands: checkoutCommands,
		checkoutQueries:  checkoutQueries,
	}
}

// @Summary Check out a book
// @Description Lend the book to a borrower. Fails when the book is unknown or already lent out.
// @Tags checkouts
// @Accept json
// @Produce json
// @Param book_id path string true "Book ID"
// @Param request body reqdto.CheckOutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutCreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /books/{book_id}/checkouts [post]
func (h *CheckoutHandler) CheckOut(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("book_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book ID format",
		})
		return
	}

	var req reqdto.CheckOutRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	checkoutID, err := h.checkoutCommands.CheckOut(c.Request.Context(), bookID, req.BorrowerID, req.CheckedOutTime())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookNotFound):
			metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomeNotFound).Inc()
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Book not found",
			})
		case errors.Is(err, commands.ErrAlreadyCheckedOut):
			metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomeConflict).Inc()
			c.JSON(http.StatusConflict, gin.H{
				"error": "Book is already checked out",
			})
		case errors.Is(err, commands.ErrCheckoutConflict):
			metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomeConflict).Inc()
			c.JSON(http.StatusConflict, gin.H{
				"error": "Checkout conflicted with a concurrent request, please retry",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomeError).Inc()
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Domain validation failed",
			})
		default:
			metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomeError).Inc()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	c.JSON(http.StatusCreated, resdto.CheckoutCreatedResponse{CheckoutID: checkoutID})
}

// @Summary Return a book
// @Description Complete the loan. The checkout, book and borrower must all match the live loan.
// @Tags checkouts
// @Accept json
// @Produce json
// @Param book_id path string true "Book ID"
// @Param checkout_id path string true "Checkout ID"
// @Param request body reqdto.ReturnRequest true "Return request"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /books/{book_id}/checkouts/{checkout_id}/returned [put]
func (h *CheckoutHandler) Return(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("book_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book ID format",
		})
		return
	}
	checkoutID, err := uuid.Parse(c.Param("checkout_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid checkout ID format",
		})
		return
	}

	var req reqdto.ReturnRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err = h.checkoutCommands.Return(c.Request.Context(), checkoutID, bookID, req.BorrowerID, req.ReturnedTime())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookNotFound):
			metrics.ReturnsTotal.WithLabelValues(metrics.OutcomeNotFound).Inc()
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Book not found",
			})
		case errors.Is(err, commands.ErrNoActiveCheckout):
			metrics.ReturnsTotal.WithLabelValues(metrics.OutcomeNotFound).Inc()
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No active checkout for this book",
			})
		case errors.Is(err, commands.ErrCheckoutMismatch):
			metrics.ReturnsTotal.WithLabelValues(metrics.OutcomeConflict).Inc()
			c.JSON(http.StatusConflict, gin.H{
				"error": "Checkout does not match the active loan",
			})
		case errors.Is(err, commands.ErrCheckoutConflict):
			metrics.ReturnsTotal.WithLabelValues(metrics.OutcomeConflict).Inc()
			c.JSON(http.StatusConflict, gin.H{
				"error": "Return conflicted with a concurrent request, please retry",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			metrics.ReturnsTotal.WithLabelValues(metrics.OutcomeError).Inc()
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Domain validation failed",
			})
		default:
			metrics.ReturnsTotal.WithLabelValues(metrics.OutcomeError).Inc()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	metrics.ReturnsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	c.JSON(http.StatusOK, gin.H{
		"status": "returned",
	})
}

// @Summary Get checkout history for a book
// @Description List the book's loans, the live one first, then archived loans newest first
// @Tags checkouts
// @Produce json
// @Param book_id path string true "Book ID"
// @Success 200 {array} resdto.CheckoutResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /books/{book_id}/checkout-history [get]
func (h *CheckoutHandler) GetBookHistory(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("book_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book ID format",
		})
		return
	}

	history, err := h.checkoutQueries.FindHistoryByBook(c.Request.Context(), bookID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Book not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCheckoutViews(history))
}

// @Summary List active checkouts
// @Description List every book currently lent out
// @Tags checkouts
// @Produce json
// @Success 200 {array} resdto.CheckoutResponse
// @Router /checkouts [get]
func (h *CheckoutHandler) ListUnreturned(c *gin.Context) {
	views, err := h.checkoutQueries.ListUnreturned(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromCheckoutViews(views))
}

// @Summary List a user's active checkouts
// @Description List the books the user currently has out
// @Tags checkouts
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {array} resdto.CheckoutResponse
// @Failure 400 {object} map[string]string
// @Router /users/{user_id}/checkouts [get]
func (h *CheckoutHandler) ListUnreturnedByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user ID format",
		})
		return
	}

	views, err := h.checkoutQueries.ListUnreturnedByBorrower(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromCheckoutViews(views))
}
