package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/travel-booking/internal/model"
	"github.com/iliyamo/travel-booking/internal/utils"
)

// UserRepo provides access to the User table.
type UserRepo struct{ DB *sql.DB }

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with a bcrypt-hashed password and returns the
// new ID. Duplicate emails surface as ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, firstName, lastName, email, phone, password string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO User (FirstName, LastName, Email, PhoneNo, Password) VALUES (?,?,?,?,?)",
		firstName, lastName, email, phone, hash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT UserID, FirstName, LastName, Email, PhoneNo, Password FROM User WHERE Email = ? LIMIT 1",
		email).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.PasswordHash)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT UserID, FirstName, LastName, Email, PhoneNo, Password FROM User WHERE UserID = ? LIMIT 1",
		id).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.PasswordHash)
	return u, err
}

// ConfirmedBookingCount recomputes the user's confirmed-booking count
// from Booking rows. The stored TotalBookings counter counts inserts and
// never decrements, so reads that promise the confirmed count must go
// through this query instead of trusting the column.
func (r *UserRepo) ConfirmedBookingCount(ctx context.Context, id uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM Booking WHERE UserID = ? AND BookingStatus = 'Confirmed'",
		id).Scan(&n)
	return n, err
}

// UpdateProfile updates the editable profile fields. It reports whether
// a row was actually touched so handlers can 404 unknown users.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, firstName, lastName, phone string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE User SET FirstName = ?, LastName = ?, PhoneNo = ? WHERE UserID = ?",
		firstName, lastName, phone, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IncrementBookingCountTx bumps the stored TotalBookings counter inside
// the booking-creation transaction. It must never run outside that
// transaction: a rolled-back booking must not leave a stray increment.
func (r *UserRepo) IncrementBookingCountTx(ctx context.Context, tx *sql.Tx, userID uint64) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE User SET TotalBookings = TotalBookings + 1 WHERE UserID = ?", userID)
	return err
}

// EmailTx resolves a user's email within a transaction; used when
// writing audit rows for a status change.
func (r *UserRepo) EmailTx(ctx context.Context, tx *sql.Tx, userID uint64) (string, error) {
	var email string
	err := tx.QueryRowContext(ctx,
		"SELECT Email FROM User WHERE UserID = ? LIMIT 1", userID).Scan(&email)
	return email, err
}
