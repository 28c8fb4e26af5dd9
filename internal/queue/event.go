// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking is successfully confirmed.
// It contains enough information for downstream consumers to notify the user
// or feed analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID    uint64  `json:"booking_id"`
	UserID       uint64  `json:"user_id"`
	UserName     string  `json:"user_name"`
	UserEmail    string  `json:"user_email"`
	HotelID      uint64  `json:"hotel_id"`
	HotelName    string  `json:"hotel_name"`
	CheckInDate  string  `json:"check_in_date"`
	CheckOutDate string  `json:"check_out_date"`
	TotalCost    float64 `json:"total_cost"`
	ConfirmedAt  string  `json:"confirmed_at"`
}
