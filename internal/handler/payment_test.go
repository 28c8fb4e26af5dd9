package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/travel-booking/internal/repository"
)

func newPaymentHandler(t *testing.T) (*PaymentHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewPaymentHandler(repository.NewPaymentRepo(db)), mock, func() { _ = db.Close() }
}

func paramCtx(method, target, body, name, value string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := doJSON(method, target, body)
	c.SetParamNames(name)
	c.SetParamValues(value)
	return c, rec
}

func TestUpdatePaymentStatusRejectsUnknownStatus(t *testing.T) {
	h, mock, done := newPaymentHandler(t)
	defer done()

	// Validation happens before any database work.
	c, rec := paramCtx(http.MethodPut, "/payments/update-status/5",
		`{"paymentStatus":"Refunded"}`, "id", "5")
	require.NoError(t, h.UpdateStatus(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePaymentStatusMissingTransaction(t *testing.T) {
	h, mock, done := newPaymentHandler(t)
	defer done()

	mock.ExpectExec(`UPDATE PaymentTransaction SET PaymentStatus`).
		WithArgs("Completed", uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, rec := paramCtx(http.MethodPut, "/payments/update-status/5",
		`{"paymentStatus":"Completed"}`, "id", "5")
	require.NoError(t, h.UpdateStatus(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Transaction not found", decodeBody(t, rec)["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePaymentStatusOK(t *testing.T) {
	h, mock, done := newPaymentHandler(t)
	defer done()

	mock.ExpectExec(`UPDATE PaymentTransaction SET PaymentStatus`).
		WithArgs("Failed", uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := paramCtx(http.MethodPut, "/payments/update-status/5",
		`{"paymentStatus":"Failed"}`, "id", "5")
	require.NoError(t, h.UpdateStatus(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentByBookingMissing(t *testing.T) {
	h, mock, done := newPaymentHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT pt.TransactionID`).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"TransactionID"}))

	c, rec := paramCtx(http.MethodGet, "/payments/booking/9", "", "id", "9")
	require.NoError(t, h.ByBooking(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No transaction found for this booking", decodeBody(t, rec)["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
