package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// parseID parses a positive numeric path parameter. A zero or malformed
// value is rejected before any database work happens.
func parseID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// fail writes the standard failure envelope.
func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, echo.Map{"success": false, "message": msg})
}

// dbError hides storage failures behind a generic message so driver
// details never reach the client.
func dbError(c echo.Context) error {
	return fail(c, http.StatusInternalServerError, "database error")
}

// getUserID extracts the authenticated user id that JWTAuth stored in
// the context and converts it to uint64
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}
