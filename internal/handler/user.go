package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/repository"
)

// UserHandler serves the user profile endpoints.
type UserHandler struct {
	Users *repository.UserRepo
}

func NewUserHandler(u *repository.UserRepo) *UserHandler {
	return &UserHandler{Users: u}
}

// Profile handles GET /user/profile/:id.  TotalBookings is recomputed
// from Booking rows rather than read from the stored counter, so a
// cancelled booking never shows up in the confirmed count.
func (h *UserHandler) Profile(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}
	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		return dbError(c)
	}
	confirmed, err := h.Users.ConfirmedBookingCount(ctx, userID)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"user": echo.Map{
			"UserID":        u.ID,
			"FirstName":     u.FirstName,
			"LastName":      u.LastName,
			"Email":         u.Email,
			"PhoneNo":       u.Phone,
			"TotalBookings": confirmed,
		},
	})
}

type updateProfileReq struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	PhoneNo   string `json:"phoneNo"`
}

// Update handles PUT /user/update/:id.
func (h *UserHandler) Update(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.FirstName == "" || req.LastName == "" {
		return fail(c, http.StatusBadRequest, "firstName and lastName are required")
	}
	ok, err := h.Users.UpdateProfile(c.Request().Context(), userID, req.FirstName, req.LastName, req.PhoneNo)
	if err != nil {
		return dbError(c)
	}
	if !ok {
		return fail(c, http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Profile updated successfully"})
}
