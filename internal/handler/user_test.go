package handler

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/travel-booking/internal/repository"
)

func newUserHandler(t *testing.T) (*UserHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewUserHandler(repository.NewUserRepo(db)), mock, func() { _ = db.Close() }
}

// The profile endpoint must report the live confirmed count, not the
// stored TotalBookings counter, so a cancelled booking disappears from
// the number immediately.
func TestProfileRecomputesConfirmedCount(t *testing.T) {
	h, mock, done := newUserHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT UserID, FirstName, LastName, Email, PhoneNo, Password FROM User`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"UserID", "FirstName", "LastName", "Email", "PhoneNo", "Password"}).
			AddRow(7, "Ana", "Petrova", "ana@example.com", "555-0100", "x"))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM Booking WHERE UserID = \? AND BookingStatus = 'Confirmed'`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	c, rec := paramCtx(http.MethodGet, "/user/profile/7", "", "id", "7")
	require.NoError(t, h.Profile(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]any)
	assert.Equal(t, float64(3), user["TotalBookings"])
	assert.Equal(t, "ana@example.com", user["Email"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfileMissingUser(t *testing.T) {
	h, mock, done := newUserHandler(t)
	defer done()

	mock.ExpectExec(`UPDATE User SET FirstName`).
		WithArgs("Ana", "Petrova", "555-0100", uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, rec := paramCtx(http.MethodPut, "/user/update/99",
		`{"firstName":"Ana","lastName":"Petrova","phoneNo":"555-0100"}`, "id", "99")
	require.NoError(t, h.Update(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decodeBody(t, rec)["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
