package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/model"
	"github.com/iliyamo/travel-booking/internal/repository"
)

// paymentListLimit caps the recent-transactions listing.
const paymentListLimit = 100

// PaymentHandler serves the payment transaction endpoints.
type PaymentHandler struct {
	Payments *repository.PaymentRepo
}

func NewPaymentHandler(p *repository.PaymentRepo) *PaymentHandler {
	return &PaymentHandler{Payments: p}
}

// List handles GET /payments/transactions, newest first.
func (h *PaymentHandler) List(c echo.Context) error {
	txs, err := h.Payments.ListRecent(c.Request().Context(), paymentListLimit)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "transactions": txs})
}

// ByBooking handles GET /payments/booking/:id.
func (h *PaymentHandler) ByBooking(c echo.Context) error {
	bookingID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid booking id")
	}
	t, err := h.Payments.GetByBooking(c.Request().Context(), bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "No transaction found for this booking")
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "transaction": t})
}

// ByUser handles GET /payments/user/:id.
func (h *PaymentHandler) ByUser(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}
	txs, err := h.Payments.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "transactions": txs})
}

type updatePaymentReq struct {
	PaymentStatus string `json:"paymentStatus"`
}

// UpdateStatus handles PUT /payments/update-status/:id.  The status value
// is validated against the stored enum before any database work.
func (h *PaymentHandler) UpdateStatus(c echo.Context) error {
	transactionID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid transaction id")
	}
	var req updatePaymentReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if !model.ValidPaymentStatus(req.PaymentStatus) {
		return fail(c, http.StatusBadRequest, "paymentStatus must be one of Pending, Completed, Failed")
	}
	ok, err := h.Payments.UpdateStatus(c.Request().Context(), transactionID, req.PaymentStatus)
	if err != nil {
		return dbError(c)
	}
	if !ok {
		return fail(c, http.StatusNotFound, "Transaction not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Payment status updated successfully"})
}
