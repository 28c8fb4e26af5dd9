package model

// User represents an application user record as stored in the `User`
// table. TotalBookings is a stored counter maintained transactionally by
// the booking lifecycle; the profile endpoint nevertheless recomputes the
// confirmed count from Booking rows so the cached value can never be
// served stale.
//
// Fields:
//  ID            – primary key identifier (User.UserID).
//  FirstName     – given name.
//  LastName      – family name.
//  Email         – unique email address.
//  Phone         – contact phone number.
//  PasswordHash  – bcrypt hash of the password.
//  TotalBookings – counter incremented when a booking is created.
type User struct {
	ID            uint64 // User.UserID
	FirstName     string // User.FirstName
	LastName      string // User.LastName
	Email         string // User.Email
	Phone         string // User.PhoneNo
	PasswordHash  string // User.Password
	TotalBookings int    // User.TotalBookings
}
