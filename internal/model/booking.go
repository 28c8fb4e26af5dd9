package model

import "time"

// Booking mirrors a row of the `Booking` table. The lifecycle only ever
// writes Status as Confirmed or Cancelled; TotalPrice is frozen at
// creation time from the hotel's nightly rate.
type Booking struct {
	ID         uint64    // Booking.BookingID
	UserID     uint64    // Booking.UserID
	HotelID    uint64    // Booking.HotelID
	CheckIn    time.Time // Booking.CheckInDate
	CheckOut   time.Time // Booking.CheckOutDate
	TotalPrice float64   // Booking.TotalPrice
	Status     string    // Booking.BookingStatus
	BookedAt   time.Time // Booking.BookingDate
}
