package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/travel-booking/internal/booking"
	"github.com/iliyamo/travel-booking/internal/model"
)

// PaymentRepo provides access to the PaymentTransaction table. A Pending
// transaction is created together with its booking; status updates come
// in later through the payments endpoint.
type PaymentRepo struct{ db *sql.DB }

// NewPaymentRepo returns a new PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// CreatePendingTx inserts a Pending payment for a freshly created
// booking inside the booking-creation transaction, so a rolled-back
// booking never leaves an orphan payment row.
func (r *PaymentRepo) CreatePendingTx(ctx context.Context, tx *sql.Tx, bookingID uint64, amount float64) error {
	const q = `INSERT INTO PaymentTransaction (BookingID, Amount, PaymentStatus) VALUES (?, ?, ?)`
	_, err := tx.ExecContext(ctx, q, bookingID, amount, model.PaymentPending)
	return err
}

// TransactionDetail is the wire shape of a payment joined with its
// booking and hotel context.
type TransactionDetail struct {
	TransactionID   uint64  `json:"TransactionID"`
	BookingID       uint64  `json:"BookingID"`
	Amount          float64 `json:"Amount"`
	PaymentStatus   string  `json:"PaymentStatus"`
	TransactionDate string  `json:"TransactionDate"`
	UserID          uint64  `json:"UserID,omitempty"`
	HotelName       string  `json:"HotelName"`
	CheckInDate     string  `json:"CheckInDate,omitempty"`
	CheckOutDate    string  `json:"CheckOutDate,omitempty"`
}

// ListRecent returns the newest transactions up to limit with user and
// hotel context.
func (r *PaymentRepo) ListRecent(ctx context.Context, limit int) ([]TransactionDetail, error) {
	const q = `SELECT pt.TransactionID, pt.BookingID, pt.Amount, pt.PaymentStatus, pt.TransactionDate,
	                  COALESCE(b.UserID, 0), COALESCE(h.Name, '')
	           FROM PaymentTransaction pt
	           LEFT JOIN Booking b ON pt.BookingID = b.BookingID
	           LEFT JOIN Hotel h ON b.HotelID = h.HotelID
	           ORDER BY pt.TransactionDate DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]TransactionDetail, 0)
	for rows.Next() {
		var t TransactionDetail
		var ts time.Time
		if err := rows.Scan(&t.TransactionID, &t.BookingID, &t.Amount, &t.PaymentStatus,
			&ts, &t.UserID, &t.HotelName); err != nil {
			return nil, err
		}
		t.TransactionDate = ts.UTC().Format(time.RFC3339)
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetByBooking returns the most recent transaction for a booking, or
// sql.ErrNoRows when none exists.
func (r *PaymentRepo) GetByBooking(ctx context.Context, bookingID uint64) (*TransactionDetail, error) {
	const q = `SELECT pt.TransactionID, pt.BookingID, pt.Amount, pt.PaymentStatus, pt.TransactionDate,
	                  COALESCE(b.UserID, 0), COALESCE(h.Name, '')
	           FROM PaymentTransaction pt
	           LEFT JOIN Booking b ON pt.BookingID = b.BookingID
	           LEFT JOIN Hotel h ON b.HotelID = h.HotelID
	           WHERE pt.BookingID = ?
	           ORDER BY pt.TransactionDate DESC LIMIT 1`
	var t TransactionDetail
	var ts time.Time
	err := r.db.QueryRowContext(ctx, q, bookingID).Scan(
		&t.TransactionID, &t.BookingID, &t.Amount, &t.PaymentStatus, &ts, &t.UserID, &t.HotelName)
	if err != nil {
		return nil, err
	}
	t.TransactionDate = ts.UTC().Format(time.RFC3339)
	return &t, nil
}

// ListByUser returns all transactions belonging to a user's bookings,
// newest first, with stay dates for display.
func (r *PaymentRepo) ListByUser(ctx context.Context, userID uint64) ([]TransactionDetail, error) {
	const q = `SELECT pt.TransactionID, pt.BookingID, pt.Amount, pt.PaymentStatus, pt.TransactionDate,
	                  COALESCE(h.Name, ''), b.CheckInDate, b.CheckOutDate
	           FROM PaymentTransaction pt
	           LEFT JOIN Booking b ON pt.BookingID = b.BookingID
	           LEFT JOIN Hotel h ON b.HotelID = h.HotelID
	           WHERE b.UserID = ?
	           ORDER BY pt.TransactionDate DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]TransactionDetail, 0)
	for rows.Next() {
		var t TransactionDetail
		var ts, checkIn, checkOut time.Time
		if err := rows.Scan(&t.TransactionID, &t.BookingID, &t.Amount, &t.PaymentStatus,
			&ts, &t.HotelName, &checkIn, &checkOut); err != nil {
			return nil, err
		}
		t.TransactionDate = ts.UTC().Format(time.RFC3339)
		t.CheckInDate = checkIn.Format(booking.DateLayout)
		t.CheckOutDate = checkOut.Format(booking.DateLayout)
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateStatus sets a transaction's status. It reports whether a row was
// touched; the handler validates the status value before calling and
// 404s when no transaction matched.
func (r *PaymentRepo) UpdateStatus(ctx context.Context, transactionID uint64, status string) (bool, error) {
	const q = `UPDATE PaymentTransaction SET PaymentStatus = ? WHERE TransactionID = ?`
	res, err := r.db.ExecContext(ctx, q, status, transactionID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
