package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/booking"
	"github.com/iliyamo/travel-booking/internal/model"
	"github.com/iliyamo/travel-booking/internal/queue"
	"github.com/iliyamo/travel-booking/internal/repository"
	queue_publisher "github.com/iliyamo/travel-booking/internal/service"
)

// BookingHandler orchestrates the booking lifecycle.  Creation and
// cancellation each run their check-then-write sequence inside a single
// transaction so two concurrent requests cannot both pass a conflict
// check and commit.  Everything the old database triggers did (the
// overbooking guard, the audit row, the booking counter) happens here as
// explicit statements in the same transaction.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Hotels   *repository.HotelRepo
	Users    *repository.UserRepo
	Audits   *repository.AuditRepo
	Payments *repository.PaymentRepo

	// notify runs after a successful commit; defaults to publishing the
	// booking.confirmed event.
	notify func(bookingID uint64)
}

// NewBookingHandler constructs a BookingHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewBookingHandler(b *repository.BookingRepo, h *repository.HotelRepo, u *repository.UserRepo, a *repository.AuditRepo, p *repository.PaymentRepo) *BookingHandler {
	if b == nil || h == nil || u == nil || a == nil || p == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	bh := &BookingHandler{Bookings: b, Hotels: h, Users: u, Audits: a, Payments: p}
	bh.notify = bh.publishConfirmed
	return bh
}

type bookingDatesReq struct {
	HotelID      uint64 `json:"hotelId"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
}

// parseStay validates the date pair shared by cost calculation and
// creation: both parseable and check-out strictly after check-in.
func parseStay(checkInDate, checkOutDate string) (time.Time, time.Time, error) {
	checkIn, err := booking.ParseDate(checkInDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid check-in date, expected YYYY-MM-DD")
	}
	checkOut, err := booking.ParseDate(checkOutDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid check-out date, expected YYYY-MM-DD")
	}
	if !booking.ValidRange(checkIn, checkOut) {
		return time.Time{}, time.Time{}, errors.New("check-out date must be after check-in date")
	}
	return checkIn, checkOut, nil
}

// CalculateCost handles POST /booking/calculate-cost.  It prices a stay
// without creating anything: nightly rate times number of nights.
func (h *BookingHandler) CalculateCost(c echo.Context) error {
	var req bookingDatesReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.HotelID == 0 {
		return fail(c, http.StatusBadRequest, "hotelId is required")
	}
	checkIn, checkOut, err := parseStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	rate, err := h.Hotels.NightlyRate(c.Request().Context(), req.HotelID)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return fail(c, http.StatusBadRequest, "Hotel not found")
		}
		return dbError(c)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":        true,
		"totalCost":      booking.Cost(rate, checkIn, checkOut),
		"numberOfNights": booking.Nights(checkIn, checkOut),
	})
}

type createBookingReq struct {
	UserID       uint64 `json:"userId"`
	HotelID      uint64 `json:"hotelId"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
}

// Create handles POST /booking/create.  Inside one transaction it checks
// the user's own bookings (closed date interval: touching stays still
// conflict), prices the stay, checks the hotel for overbooking (half-open
// interval: back-to-back stays are fine), then inserts the Confirmed
// booking, bumps the user's booking counter and opens a Pending payment.
// The two conflict checks deliberately use different interval boundaries.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == 0 || req.HotelID == 0 {
		return fail(c, http.StatusBadRequest, "userId and hotelId are required")
	}
	checkIn, checkOut, err := parseStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return dbError(c)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	userConflicts, err := h.Bookings.CountUserConflictsTx(ctx, tx, req.UserID, checkIn, checkOut)
	if err != nil {
		return dbError(c)
	}
	if userConflicts > 0 {
		return c.JSON(http.StatusOK, echo.Map{
			"success":    false,
			"bookingId":  0,
			"totalPrice": 0,
			"message":    "User has conflicting bookings on these dates",
		})
	}

	rate, err := h.Hotels.NightlyRateTx(ctx, tx, req.HotelID)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return fail(c, http.StatusBadRequest, "Hotel not found")
		}
		return dbError(c)
	}
	totalPrice := booking.Cost(rate, checkIn, checkOut)

	hotelConflicts, err := h.Bookings.CountHotelConflictsTx(ctx, tx, req.HotelID, checkIn, checkOut)
	if err != nil {
		return dbError(c)
	}
	if hotelConflicts > 0 {
		return fail(c, http.StatusBadRequest,
			"Hotel is not available for selected dates. Please choose different dates.")
	}

	b := model.Booking{
		UserID:     req.UserID,
		HotelID:    req.HotelID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		TotalPrice: totalPrice,
		Status:     booking.StatusConfirmed,
	}
	if err := h.Bookings.CreateTx(ctx, tx, &b); err != nil {
		return dbError(c)
	}
	if err := h.Users.IncrementBookingCountTx(ctx, tx, req.UserID); err != nil {
		return dbError(c)
	}
	if err := h.Payments.CreatePendingTx(ctx, tx, b.ID, totalPrice); err != nil {
		return dbError(c)
	}
	if err := tx.Commit(); err != nil {
		return dbError(c)
	}
	committed = true

	// Notify after commit; a broker failure must not fail the booking.
	if h.notify != nil {
		go h.notify(b.ID)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"bookingId":  b.ID,
		"totalPrice": totalPrice,
		"message":    "Booking created successfully",
	})
}

// publishConfirmed loads the committed booking's detail projection and
// publishes the confirmation event.  Errors are logged only.
func (h *BookingHandler) publishConfirmed(bookingID uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	det, err := h.Bookings.GetDetail(ctx, bookingID)
	if err != nil {
		log.Printf("booking-publish: load detail for booking %d failed: %v", bookingID, err)
		return
	}
	ev := queue.BookingConfirmedEvent{
		BookingID:    det.BookingID,
		UserName:     det.UserName,
		UserEmail:    det.Email,
		HotelName:    det.HotelName,
		CheckInDate:  det.CheckInDate,
		CheckOutDate: det.CheckOutDate,
		TotalCost:    det.TotalPrice,
		ConfirmedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue_publisher.PublishBookingConfirmed(ctx, ev); err != nil {
		log.Printf("booking-publish: publish for booking %d failed: %v", bookingID, err)
	}
}

// Cancel handles PUT /booking/cancel/:id.  The booking row is locked
// before the status is read so concurrent cancels serialize; exactly one
// of them sees Confirmed and writes the single audit row.
func (h *BookingHandler) Cancel(c echo.Context) error {
	bookingID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid booking id")
	}

	ctx := c.Request().Context()
	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return dbError(c)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	status, userID, err := h.Bookings.StatusForUpdateTx(ctx, tx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusOK, echo.Map{"success": false, "message": "Booking does not exist"})
		}
		return dbError(c)
	}

	switch status {
	case booking.StatusCancelled:
		return c.JSON(http.StatusOK, echo.Map{"success": false, "message": "Booking is already cancelled"})
	case booking.StatusConfirmed:
		// fall through to the transition below
	default:
		return c.JSON(http.StatusOK, echo.Map{
			"success": false,
			"message": fmt.Sprintf("Cannot cancel booking with status: %s", status),
		})
	}

	if err := h.Bookings.UpdateStatusTx(ctx, tx, bookingID, booking.StatusCancelled); err != nil {
		return dbError(c)
	}
	email, err := h.Users.EmailTx(ctx, tx, userID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return dbError(c)
	}
	if err := h.Audits.InsertTx(ctx, tx, bookingID, booking.ActionStatusChange,
		booking.StatusConfirmed, booking.StatusCancelled, email); err != nil {
		return dbError(c)
	}
	if err := tx.Commit(); err != nil {
		return dbError(c)
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Booking cancelled successfully"})
}

// Details handles GET /booking/details/:id.
func (h *BookingHandler) Details(c echo.Context) error {
	bookingID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid booking id")
	}
	det, err := h.Bookings.GetDetail(c.Request().Context(), bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "Booking not found")
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "booking": det})
}

// ListByUser handles GET /bookings/user/:id.
func (h *BookingHandler) ListByUser(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}
	list, err := h.Bookings.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "bookings": list})
}
