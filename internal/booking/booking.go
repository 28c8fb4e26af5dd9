// Package booking holds the pure rules of the booking lifecycle: cost
// computation, date-range conflict predicates and status transitions.
// Nothing in this package touches the database; repositories run the
// equivalent SQL inside transactions and handlers use these helpers for
// validation and for values computed in Go.
package booking

import "time"

// Booking status values as stored in Booking.BookingStatus.
const (
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
)

// ActionStatusChange is the ActionType written to BookingAudit whenever a
// booking's status actually changes.
const ActionStatusChange = "Status Change"

// DateLayout is the wire format for all booking dates.
const DateLayout = "2006-01-02"

// Nights returns the whole number of nights between check-in and check-out.
// The result is zero or negative when checkOut is not strictly after
// checkIn; callers must validate the range before charging for it.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// Cost computes nightlyRate * nights for a stay. Like the underlying
// pricing rule it does not guard against inverted ranges, so a zero or
// negative result signals a caller error rather than a free stay.
func Cost(nightlyRate float64, checkIn, checkOut time.Time) float64 {
	return nightlyRate * float64(Nights(checkIn, checkOut))
}

// HotelDatesOverlap reports whether two stays at the same hotel collide.
// Intervals are half-open: a stay checking out on the day another checks
// in does not conflict, so back-to-back bookings are allowed.
func HotelDatesOverlap(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}

// UserDatesOverlap reports whether two stays by the same user collide.
// Unlike the hotel check this treats the interval as closed on both ends:
// a user whose existing booking checks out on the candidate's check-in
// date is still considered conflicting. The two predicates intentionally
// disagree at the boundary dates and must not be unified.
func UserDatesOverlap(aIn, aOut, bIn, bOut time.Time) bool {
	return !aIn.After(bOut) && !aOut.Before(bIn)
}

// ParseDate parses a YYYY-MM-DD wire date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ValidRange reports whether checkOut is strictly after checkIn.
func ValidRange(checkIn, checkOut time.Time) bool {
	return checkOut.After(checkIn)
}
