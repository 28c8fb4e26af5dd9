package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/repository"
)

// HotelHandler serves hotel listing.
type HotelHandler struct {
	Hotels *repository.HotelRepo
}

func NewHotelHandler(h *repository.HotelRepo) *HotelHandler {
	return &HotelHandler{Hotels: h}
}

// List handles GET /hotels.
func (h *HotelHandler) List(c echo.Context) error {
	hotels, err := h.Hotels.List(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "hotels": hotels})
}
