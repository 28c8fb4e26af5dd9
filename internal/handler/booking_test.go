package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/travel-booking/internal/repository"
)

// newBookingHandler wires a BookingHandler onto a sqlmock database with
// the after-commit notification disabled, so tests only observe the SQL
// the transaction itself runs.
func newBookingHandler(t *testing.T) (*BookingHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	h := NewBookingHandler(
		repository.NewBookingRepo(db),
		repository.NewHotelRepo(db),
		repository.NewUserRepo(db),
		repository.NewAuditRepo(db),
		repository.NewPaymentRepo(db),
	)
	h.notify = nil
	return h, mock, func() { _ = db.Close() }
}

func doJSON(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestCreateBookingHappyPath(t *testing.T) {
	h, mock, done := newBookingHandler(t)
	defer done()

	checkIn := mustDate(t, "2025-07-01")
	checkOut := mustDate(t, "2025-07-04")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM Booking\s+WHERE UserID`).
		WithArgs(uint64(7), checkOut, checkIn).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT PricePerNight FROM Hotel`).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"PricePerNight"}).AddRow(150.0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM Booking\s+WHERE HotelID`).
		WithArgs(uint64(3), checkOut, checkIn).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO Booking`).
		WithArgs(uint64(7), uint64(3), checkIn, checkOut, 450.0, "Confirmed").
		WillReturnResult(sqlmock.NewResult(99, 1))
	mock.ExpectExec(`UPDATE User SET TotalBookings = TotalBookings \+ 1`).
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO PaymentTransaction`).
		WithArgs(int64(99), 450.0, "Pending").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	c, rec := doJSON(http.MethodPost, "/booking/create",
		`{"userId":7,"hotelId":3,"checkInDate":"2025-07-01","checkOutDate":"2025-07-04"}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(99), body["bookingId"])
	assert.Equal(t, 450.0, body["totalPrice"])
	assert.Equal(t, "Booking created successfully", body["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingUserConflictRollsBack(t *testing.T) {
	h, mock, done := newBookingHandler(t)
	defer done()

	checkIn := mustDate(t, "2025-07-01")
	checkOut := mustDate(t, "2025-07-04")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM Booking\s+WHERE UserID`).
		WithArgs(uint64(7), checkOut, checkIn).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	c, rec := doJSON(http.MethodPost, "/booking/create",
		`{"userId":7,"hotelId":3,"checkInDate":"2025-07-01","checkOutDate":"2025-07-04"}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(0), body["bookingId"])
	assert.Equal(t, float64(0), body["totalPrice"])
	assert.Equal(t, "User has conflicting bookings on these dates", body["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingHotelConflictRollsBack(t *testing.T) {
	h, mock, done := newBookingHandler(t)
	defer done()

	checkIn := mustDate(t, "2025-07-01")
	checkOut := mustDate(t, "2025-07-04")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM Booking\s+WHERE UserID`).
		WithArgs(uint64(7), checkOut, checkIn).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT PricePerNight FROM Hotel`).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"PricePerNight"}).AddRow(150.0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM Booking\s+WHERE HotelID`).
		WithArgs(uint64(3), checkOut, checkIn).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	c, rec := doJSON(http.MethodPost, "/booking/create",
		`{"userId":7,"hotelId":3,"checkInDate":"2025-07-01","checkOutDate":"2025-07-04"}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Hotel is not available for selected dates. Please choose different dates.", body["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingUnknownHotel(t *testing.T) {
	h, mock, done := newBookingHandler(t)
	defer done()

	checkIn := mustDate(t, "2025-07-01")
	checkOut := mustDate(t, "2025-07-04")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM Booking\s+WHERE UserID`).
		WithArgs(uint64(7), checkOut, checkIn).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT PricePerNight FROM Hotel`).
		WithArgs(uint64(42)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	c, rec := doJSON(http.MethodPost, "/booking/create",
		`{"userId":7,"hotelId":42,"checkInDate":"2025-07-01","checkOutDate":"2025-07-04"}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Hotel not found", decodeBody(t, rec)["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRejectsBadDates(t *testing.T) {
	h, _, done := newBookingHandler(t)
	defer done()

	for name, body := range map[string]string{
		"malformed":   `{"userId":7,"hotelId":3,"checkInDate":"01-07-2025","checkOutDate":"2025-07-04"}`,
		"same day":    `{"userId":7,"hotelId":3,"checkInDate":"2025-07-01","checkOutDate":"2025-07-01"}`,
		"inverted":    `{"userId":7,"hotelId":3,"checkInDate":"2025-07-04","checkOutDate":"2025-07-01"}`,
		"missing ids": `{"checkInDate":"2025-07-01","checkOutDate":"2025-07-04"}`,
	} {
		t.Run(name, func(t *testing.T) {
			c, rec := doJSON(http.MethodPost, "/booking/create", body)
			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, decodeBody(t, rec)["success"])
		})
	}
}

func cancelCtx(id string, body string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := doJSON(http.MethodPut, "/booking/cancel/"+id, body)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func TestCancelBookingConfirmed(t *testing.T) {
	h, mock, done := newBookingHandler(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT BookingStatus, UserID FROM Booking`).
		WithArgs(uint64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"BookingStatus", "UserID"}).AddRow("Confirmed", uint64(7)))
	mock.ExpectExec(`UPDATE Booking SET BookingStatus`).
		WithArgs("Cancelled", uint64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT Email FROM User`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"Email"}).AddRow("ana@example.com"))
	mock.ExpectExec(`INSERT INTO BookingAudit`).
		WithArgs(uint64(12), "Status Change", "Confirmed", "Cancelled", "ana@example.com").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	c, rec := cancelCtx("12", "")
	require.NoError(t, h.Cancel(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Booking cancelled successfully", body["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingAlreadyCancelled(t *testing.T) {
	h, mock, done := newBookingHandler(t)
	defer done()

	// No status update and no audit row: the second cancel is a no-op.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT BookingStatus, UserID FROM Booking`).
		WithArgs(uint64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"BookingStatus", "UserID"}).AddRow("Cancelled", uint64(7)))
	mock.ExpectRollback()

	c, rec := cancelCtx("12", "")
	require.NoError(t, h.Cancel(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Booking is already cancelled", body["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingMissing(t *testing.T) {
	h, mock, done := newBookingHandler(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT BookingStatus, UserID FROM Booking`).
		WithArgs(uint64(404)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	c, rec := cancelCtx("404", "")
	require.NoError(t, h.Cancel(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Booking does not exist", body["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingUnknownStatus(t *testing.T) {
	h, mock, done := newBookingHandler(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT BookingStatus, UserID FROM Booking`).
		WithArgs(uint64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"BookingStatus", "UserID"}).AddRow("Archived", uint64(7)))
	mock.ExpectRollback()

	c, rec := cancelCtx("12", "")
	require.NoError(t, h.Cancel(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Cannot cancel booking with status: Archived", body["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalculateCost(t *testing.T) {
	h, mock, done := newBookingHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT PricePerNight FROM Hotel`).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"PricePerNight"}).AddRow(100.0))

	c, rec := doJSON(http.MethodPost, "/booking/calculate-cost",
		`{"hotelId":3,"checkInDate":"2025-07-01","checkOutDate":"2025-07-03"}`)
	require.NoError(t, h.CalculateCost(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 200.0, body["totalCost"])
	assert.Equal(t, float64(2), body["numberOfNights"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
