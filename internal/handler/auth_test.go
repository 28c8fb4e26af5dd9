package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/travel-booking/internal/config"
	"github.com/iliyamo/travel-booking/internal/repository"
	"github.com/iliyamo/travel-booking/internal/utils"
)

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 15, BcryptCost: bcrypt.MinCost}
	return NewAuthHandler(cfg, repository.NewUserRepo(db)), mock, func() { _ = db.Close() }
}

func TestRegisterCreatesUser(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	mock.ExpectExec(`INSERT INTO User`).
		WithArgs("Ana", "Petrova", "ana@example.com", "555-0100", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(5, 1))

	c, rec := doJSON(http.MethodPost, "/register",
		`{"firstName":"Ana","lastName":"Petrova","email":"Ana@Example.com","phoneNo":"555-0100","password":"secret"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(5), body["userId"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	mock.ExpectExec(`INSERT INTO User`).
		WithArgs("Ana", "Petrova", "ana@example.com", "", sqlmock.AnyArg()).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'ana@example.com'"))

	c, rec := doJSON(http.MethodPost, "/register",
		`{"firstName":"Ana","lastName":"Petrova","email":"ana@example.com","password":"secret"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already registered", decodeBody(t, rec)["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginIssuesToken(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	hash, err := utils.HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT UserID, FirstName, LastName, Email, PhoneNo, Password FROM User WHERE Email`).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows(
			[]string{"UserID", "FirstName", "LastName", "Email", "PhoneNo", "Password"}).
			AddRow(7, "Ana", "Petrova", "ana@example.com", "555-0100", hash))

	c, rec := doJSON(http.MethodPost, "/login", `{"email":"ana@example.com","password":"secret"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	hash, err := utils.HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT UserID, FirstName, LastName, Email, PhoneNo, Password FROM User WHERE Email`).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows(
			[]string{"UserID", "FirstName", "LastName", "Email", "PhoneNo", "Password"}).
			AddRow(7, "Ana", "Petrova", "ana@example.com", "555-0100", hash))

	c, rec := doJSON(http.MethodPost, "/login", `{"email":"ana@example.com","password":"nope"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decodeBody(t, rec)["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
