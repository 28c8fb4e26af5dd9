package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/travel-booking/internal/booking"
	"github.com/iliyamo/travel-booking/internal/model"
)

// BookingRepo provides access to the Booking table. The conflict counts
// and the status read-modify-write all have ...Tx variants: the booking
// lifecycle must run its check-then-write sequences inside one
// transaction so two concurrent requests cannot both pass a check and
// commit. The caller owns commit/rollback.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// CountUserConflictsTx counts the user's Confirmed bookings whose stay
// overlaps the candidate range. The comparison is closed on both ends
// (<= / >=): a booking checking out on the candidate's check-in date
// still counts as a conflict. This is deliberately stricter than the
// hotel check below. The rows are locked so a concurrent create for the
// same user serializes behind this transaction.
func (r *BookingRepo) CountUserConflictsTx(ctx context.Context, tx *sql.Tx, userID uint64, checkIn, checkOut time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM Booking
	           WHERE UserID = ? AND BookingStatus = 'Confirmed'
	           AND CheckInDate <= ? AND CheckOutDate >= ?
	           FOR UPDATE`
	var n int
	err := tx.QueryRowContext(ctx, q, userID, checkOut, checkIn).Scan(&n)
	return n, err
}

// CountHotelConflictsTx counts Confirmed bookings at the hotel whose
// stay overlaps the candidate range. Intervals are half-open (< / >), so
// back-to-back stays sharing a boundary date do not conflict. Locked for
// the same reason as the user check: the losing concurrent transaction
// must observe the winner's insert.
func (r *BookingRepo) CountHotelConflictsTx(ctx context.Context, tx *sql.Tx, hotelID uint64, checkIn, checkOut time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM Booking
	           WHERE HotelID = ? AND BookingStatus = 'Confirmed'
	           AND CheckInDate < ? AND CheckOutDate > ?
	           FOR UPDATE`
	var n int
	err := tx.QueryRowContext(ctx, q, hotelID, checkOut, checkIn).Scan(&n)
	return n, err
}

// CreateTx inserts a new booking within the scope of an existing
// transaction and populates the generated ID on the provided record.
// Status must already be set; the lifecycle only ever inserts Confirmed.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO Booking (UserID, HotelID, CheckInDate, CheckOutDate, TotalPrice, BookingStatus)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.UserID, b.HotelID, b.CheckIn, b.CheckOut, b.TotalPrice, b.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// StatusForUpdateTx reads a booking's current status and owner, locking
// the row so no other writer can change the status between this read and
// the following update. Returns sql.ErrNoRows when the booking does not
// exist.
func (r *BookingRepo) StatusForUpdateTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (string, uint64, error) {
	const q = `SELECT BookingStatus, UserID FROM Booking WHERE BookingID = ? FOR UPDATE`
	var status string
	var userID uint64
	err := tx.QueryRowContext(ctx, q, bookingID).Scan(&status, &userID)
	return status, userID, err
}

// UpdateStatusTx sets a booking's status. Callers must have read the old
// status in the same transaction and must append the audit row when the
// value actually changes; see AuditRepo.InsertTx.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, bookingID uint64, status string) error {
	const q = `UPDATE Booking SET BookingStatus = ? WHERE BookingID = ?`
	_, err := tx.ExecContext(ctx, q, status, bookingID)
	return err
}

// BookingDetail is the detail projection joining user and hotel data for
// a single booking. Field names follow the wire format consumed by the
// frontend.
type BookingDetail struct {
	BookingID      uint64  `json:"BookingID"`
	UserName       string  `json:"UserName"`
	Email          string  `json:"Email"`
	HotelName      string  `json:"HotelName"`
	Location       string  `json:"Location"`
	HotelRating    float64 `json:"HotelRating"`
	PricePerNight  float64 `json:"PricePerNight"`
	CheckInDate    string  `json:"CheckInDate"`
	CheckOutDate   string  `json:"CheckOutDate"`
	NumberOfNights int     `json:"NumberOfNights"`
	TotalPrice     float64 `json:"TotalPrice"`
	BookingStatus  string  `json:"BookingStatus"`
	BookingDate    string  `json:"BookingDate"`
}

// GetDetail returns the booking detail projection. The joins are LEFT
// joins so a booking whose user or hotel was removed still resolves;
// sql.ErrNoRows is returned only when the booking itself is missing.
func (r *BookingRepo) GetDetail(ctx context.Context, bookingID uint64) (*BookingDetail, error) {
	const q = `SELECT b.BookingID,
	                  CONCAT(u.FirstName, ' ', u.LastName),
	                  COALESCE(u.Email, ''),
	                  COALESCE(h.Name, ''), COALESCE(h.Location, ''),
	                  COALESCE(h.Rating, 0), COALESCE(h.PricePerNight, 0),
	                  b.CheckInDate, b.CheckOutDate,
	                  DATEDIFF(b.CheckOutDate, b.CheckInDate),
	                  b.TotalPrice, b.BookingStatus, b.BookingDate
	           FROM Booking b
	           LEFT JOIN User u ON b.UserID = u.UserID
	           LEFT JOIN Hotel h ON b.HotelID = h.HotelID
	           WHERE b.BookingID = ?`
	var det BookingDetail
	var userName sql.NullString
	var checkIn, checkOut, bookedAt time.Time
	err := r.db.QueryRowContext(ctx, q, bookingID).Scan(
		&det.BookingID, &userName, &det.Email,
		&det.HotelName, &det.Location, &det.HotelRating, &det.PricePerNight,
		&checkIn, &checkOut, &det.NumberOfNights,
		&det.TotalPrice, &det.BookingStatus, &bookedAt,
	)
	if err != nil {
		return nil, err
	}
	if userName.Valid {
		det.UserName = userName.String
	}
	det.CheckInDate = checkIn.Format(booking.DateLayout)
	det.CheckOutDate = checkOut.Format(booking.DateLayout)
	det.BookingDate = bookedAt.UTC().Format(time.RFC3339)
	return &det, nil
}

// UserBooking is one entry of a user's booking list. Dates are already
// normalized to YYYY-MM-DD strings.
type UserBooking struct {
	BookingID     uint64  `json:"BookingID"`
	CheckInDate   string  `json:"CheckInDate"`
	CheckOutDate  string  `json:"CheckOutDate"`
	TotalPrice    float64 `json:"TotalPrice"`
	BookingStatus string  `json:"BookingStatus"`
	BookingDate   string  `json:"BookingDate"`
	HotelName     string  `json:"HotelName"`
	HotelLocation string  `json:"HotelLocation"`
	HotelRating   float64 `json:"HotelRating"`
}

// ListByUser returns all bookings for the given user, newest first. When
// no bookings exist an empty slice is returned.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]UserBooking, error) {
	const q = `SELECT b.BookingID, b.CheckInDate, b.CheckOutDate, b.TotalPrice,
	                  b.BookingStatus, b.BookingDate,
	                  COALESCE(h.Name, ''), COALESCE(h.Location, ''), COALESCE(h.Rating, 0)
	           FROM Booking b
	           LEFT JOIN Hotel h ON b.HotelID = h.HotelID
	           WHERE b.UserID = ?
	           ORDER BY b.BookingDate DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]UserBooking, 0)
	for rows.Next() {
		var ub UserBooking
		var checkIn, checkOut, bookedAt time.Time
		if err := rows.Scan(&ub.BookingID, &checkIn, &checkOut, &ub.TotalPrice,
			&ub.BookingStatus, &bookedAt,
			&ub.HotelName, &ub.HotelLocation, &ub.HotelRating); err != nil {
			return nil, err
		}
		ub.CheckInDate = checkIn.Format(booking.DateLayout)
		ub.CheckOutDate = checkOut.Format(booking.DateLayout)
		ub.BookingDate = bookedAt.UTC().Format(time.RFC3339)
		out = append(out, ub)
	}
	return out, rows.Err()
}
