package repository

import (
	"context"
	"database/sql"
	"math"
	"time"

	"github.com/iliyamo/travel-booking/internal/booking"
)

// ReportRepo bundles the read-only reporting and analytics queries. All
// results are recomputed from current rows on every call; nothing here
// writes or caches.
type ReportRepo struct{ db *sql.DB }

// NewReportRepo returns a new ReportRepo bound to the given database.
func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{db: db} }

// UserTotalSpending sums TotalPrice over the user's Confirmed bookings.
// Cancelled bookings never contribute, and a user with no bookings
// yields zero rather than an error.
func (r *ReportRepo) UserTotalSpending(ctx context.Context, userID uint64) (float64, error) {
	const q = `SELECT COALESCE(SUM(TotalPrice), 0) FROM Booking
	           WHERE UserID = ? AND BookingStatus = 'Confirmed'`
	var total float64
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&total)
	return total, err
}

// PopularDestination pairs a destination with its itinerary count and
// derived popularity tier.
type PopularDestination struct {
	DestID           uint64  `json:"DestID"`
	Name             string  `json:"Name"`
	Location         string  `json:"Location"`
	Type             string  `json:"Type"`
	Rating           float64 `json:"Rating"`
	PopularityStatus string  `json:"PopularityStatus"`
	TotalItineraries int     `json:"TotalItineraries"`
}

// PopularDestinations lists every destination with its itinerary count,
// most-included first. The tier is computed from the count in Go; the
// classification rule lives in the booking package.
func (r *ReportRepo) PopularDestinations(ctx context.Context) ([]PopularDestination, error) {
	const q = `SELECT d.DestID, d.Name, d.Location, d.Type, d.Rating,
	                  COUNT(inc.ItineraryID)
	           FROM Destination d
	           LEFT JOIN Includes inc ON d.DestID = inc.DestID
	           GROUP BY d.DestID, d.Name, d.Location, d.Type, d.Rating
	           ORDER BY COUNT(inc.ItineraryID) DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]PopularDestination, 0)
	for rows.Next() {
		var d PopularDestination
		if err := rows.Scan(&d.DestID, &d.Name, &d.Location, &d.Type, &d.Rating, &d.TotalItineraries); err != nil {
			return nil, err
		}
		d.PopularityStatus = booking.PopularityTier(d.TotalItineraries)
		out = append(out, d)
	}
	return out, rows.Err()
}

// DashboardStats aggregates the headline numbers for the dashboard.
type DashboardStats struct {
	TotalBookings     int     `json:"totalBookings"`
	TotalUsers        int     `json:"totalUsers"`
	TotalDestinations int     `json:"totalDestinations"`
	AvgHotelRating    float64 `json:"avgHotelRating"`
	TotalRevenue      float64 `json:"totalRevenue"`
}

// Dashboard runs the aggregate counts in one round trip. Revenue only
// counts Confirmed bookings.
func (r *ReportRepo) Dashboard(ctx context.Context) (DashboardStats, error) {
	const q = `SELECT (SELECT COUNT(*) FROM Booking),
	                  (SELECT COUNT(*) FROM User),
	                  (SELECT COUNT(*) FROM Destination),
	                  (SELECT COALESCE(AVG(Rating), 0) FROM Hotel),
	                  (SELECT COALESCE(SUM(TotalPrice), 0) FROM Booking WHERE BookingStatus = 'Confirmed')`
	var s DashboardStats
	err := r.db.QueryRowContext(ctx, q).Scan(
		&s.TotalBookings, &s.TotalUsers, &s.TotalDestinations, &s.AvgHotelRating, &s.TotalRevenue)
	if err != nil {
		return DashboardStats{}, err
	}
	s.AvgHotelRating = math.Round(s.AvgHotelRating*100) / 100
	return s, nil
}

// PricedHotel is a hotel row used by the above-average-price report.
type PricedHotel struct {
	HotelID       uint64  `json:"HotelID"`
	Name          string  `json:"Name"`
	Location      string  `json:"Location"`
	PricePerNight float64 `json:"PricePerNight"`
	Rating        float64 `json:"Rating"`
}

// HotelsAboveAveragePrice returns hotels priced above the global
// average, most expensive first.
func (r *ReportRepo) HotelsAboveAveragePrice(ctx context.Context) ([]PricedHotel, error) {
	const q = `SELECT HotelID, Name, Location, PricePerNight, Rating
	           FROM Hotel
	           WHERE PricePerNight > (SELECT AVG(PricePerNight) FROM Hotel)
	           ORDER BY PricePerNight DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]PricedHotel, 0)
	for rows.Next() {
		var h PricedHotel
		if err := rows.Scan(&h.HotelID, &h.Name, &h.Location, &h.PricePerNight, &h.Rating); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// BookingUser is a user row in the users-with-bookings report.
type BookingUser struct {
	UserID    uint64 `json:"UserID"`
	FirstName string `json:"FirstName"`
	LastName  string `json:"LastName"`
	Email     string `json:"Email"`
	Phone     string `json:"PhoneNo"`
}

// UsersWithBookings returns users that hold at least one Confirmed
// booking, ordered by name.
func (r *ReportRepo) UsersWithBookings(ctx context.Context) ([]BookingUser, error) {
	const q = `SELECT UserID, FirstName, LastName, Email, PhoneNo
	           FROM User
	           WHERE UserID IN (SELECT DISTINCT UserID FROM Booking WHERE BookingStatus = 'Confirmed')
	           ORDER BY LastName, FirstName`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]BookingUser, 0)
	for rows.Next() {
		var u BookingUser
		if err := rows.Scan(&u.UserID, &u.FirstName, &u.LastName, &u.Email, &u.Phone); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UnvisitedDestination is a destination no itinerary includes.
type UnvisitedDestination struct {
	DestID   uint64  `json:"DestID"`
	Name     string  `json:"Name"`
	Location string  `json:"Location"`
	Type     string  `json:"Type"`
	Rating   float64 `json:"Rating"`
}

// DestinationsNotInItineraries returns destinations absent from every
// itinerary, ordered by name.
func (r *ReportRepo) DestinationsNotInItineraries(ctx context.Context) ([]UnvisitedDestination, error) {
	const q = `SELECT DestID, Name, Location, Type, Rating
	           FROM Destination
	           WHERE DestID NOT IN (SELECT DISTINCT DestID FROM Includes WHERE DestID IS NOT NULL)
	           ORDER BY Name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]UnvisitedDestination, 0)
	for rows.Next() {
		var d UnvisitedDestination
		if err := rows.Scan(&d.DestID, &d.Name, &d.Location, &d.Type, &d.Rating); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// RatedBooking is a booking joined with its hotel for the
// above-local-average rating report.
type RatedBooking struct {
	BookingID     uint64  `json:"BookingID"`
	CheckInDate   string  `json:"CheckInDate"`
	CheckOutDate  string  `json:"CheckOutDate"`
	TotalPrice    float64 `json:"TotalPrice"`
	BookingStatus string  `json:"BookingStatus"`
	HotelName     string  `json:"HotelName"`
	HotelLocation string  `json:"HotelLocation"`
	PricePerNight float64 `json:"PricePerNight"`
	HotelRating   float64 `json:"HotelRating"`
	UserName      string  `json:"UserName"`
}

// BookingsWithHotelDetails returns bookings at hotels rated above the
// average for their own location (correlated subquery), newest first.
func (r *ReportRepo) BookingsWithHotelDetails(ctx context.Context) ([]RatedBooking, error) {
	const q = `SELECT b.BookingID, b.CheckInDate, b.CheckOutDate, b.TotalPrice, b.BookingStatus,
	                  h.Name, h.Location, h.PricePerNight, h.Rating,
	                  CONCAT(u.FirstName, ' ', u.LastName)
	           FROM Booking b
	           INNER JOIN Hotel h ON b.HotelID = h.HotelID
	           INNER JOIN User u ON b.UserID = u.UserID
	           WHERE h.Rating > (SELECT AVG(Rating) FROM Hotel h2 WHERE h2.Location = h.Location)
	           ORDER BY b.BookingDate DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]RatedBooking, 0)
	for rows.Next() {
		var b RatedBooking
		var checkIn, checkOut time.Time
		if err := rows.Scan(&b.BookingID, &checkIn, &checkOut, &b.TotalPrice, &b.BookingStatus,
			&b.HotelName, &b.HotelLocation, &b.PricePerNight, &b.HotelRating, &b.UserName); err != nil {
			return nil, err
		}
		b.CheckInDate = checkIn.Format(booking.DateLayout)
		b.CheckOutDate = checkOut.Format(booking.DateLayout)
		out = append(out, b)
	}
	return out, rows.Err()
}

// UserBookingCount pairs a user with the confirmed-booking count and
// lifetime spending recomputed from Booking rows.
type UserBookingCount struct {
	UserID            uint64  `json:"UserID"`
	UserName          string  `json:"UserName"`
	Email             string  `json:"Email"`
	ConfirmedBookings int     `json:"ConfirmedBookings"`
	TotalSpending     float64 `json:"TotalSpending"`
}

// UsersBookingCount returns every user with their confirmed counts and
// spending, heaviest bookers first.
func (r *ReportRepo) UsersBookingCount(ctx context.Context) ([]UserBookingCount, error) {
	const q = `SELECT u.UserID, CONCAT(u.FirstName, ' ', u.LastName), u.Email,
	                  (SELECT COUNT(*) FROM Booking b
	                   WHERE b.UserID = u.UserID AND b.BookingStatus = 'Confirmed'),
	                  (SELECT COALESCE(SUM(b2.TotalPrice), 0) FROM Booking b2
	                   WHERE b2.UserID = u.UserID AND b2.BookingStatus = 'Confirmed')
	           FROM User u
	           ORDER BY 4 DESC, 5 DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]UserBookingCount, 0)
	for rows.Next() {
		var u UserBookingCount
		if err := rows.Scan(&u.UserID, &u.UserName, &u.Email, &u.ConfirmedBookings, &u.TotalSpending); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// HotelBookingStats aggregates per-hotel booking and revenue figures.
type HotelBookingStats struct {
	HotelID           uint64  `json:"HotelID"`
	HotelName         string  `json:"HotelName"`
	Location          string  `json:"Location"`
	PricePerNight     float64 `json:"PricePerNight"`
	Rating            float64 `json:"Rating"`
	TotalBookings     int     `json:"TotalBookings"`
	ConfirmedBookings int     `json:"ConfirmedBookings"`
	CancelledBookings int     `json:"CancelledBookings"`
	TotalRevenue      float64 `json:"TotalRevenue"`
	AvgBookingValue   float64 `json:"AvgBookingValue"`
}

// HotelsBookingStats returns per-hotel statistics for hotels with at
// least one booking, highest revenue first.
func (r *ReportRepo) HotelsBookingStats(ctx context.Context) ([]HotelBookingStats, error) {
	const q = `SELECT h.HotelID, h.Name, h.Location, h.PricePerNight, h.Rating,
	                  COUNT(b.BookingID),
	                  COUNT(CASE WHEN b.BookingStatus = 'Confirmed' THEN 1 END),
	                  COUNT(CASE WHEN b.BookingStatus = 'Cancelled' THEN 1 END),
	                  COALESCE(SUM(CASE WHEN b.BookingStatus = 'Confirmed' THEN b.TotalPrice ELSE 0 END), 0),
	                  COALESCE(AVG(CASE WHEN b.BookingStatus = 'Confirmed' THEN b.TotalPrice END), 0)
	           FROM Hotel h
	           LEFT JOIN Booking b ON h.HotelID = b.HotelID
	           GROUP BY h.HotelID, h.Name, h.Location, h.PricePerNight, h.Rating
	           HAVING COUNT(b.BookingID) > 0
	           ORDER BY 9 DESC, 7 DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]HotelBookingStats, 0)
	for rows.Next() {
		var h HotelBookingStats
		if err := rows.Scan(&h.HotelID, &h.HotelName, &h.Location, &h.PricePerNight, &h.Rating,
			&h.TotalBookings, &h.ConfirmedBookings, &h.CancelledBookings,
			&h.TotalRevenue, &h.AvgBookingValue); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
