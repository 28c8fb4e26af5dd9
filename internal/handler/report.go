package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/repository"
)

// ReportHandler serves the read-only reporting endpoints.  Every figure
// is recomputed from current rows per request; these routes sit behind
// the response cache middleware, booking mutations never do.
type ReportHandler struct {
	Reports *repository.ReportRepo
}

func NewReportHandler(r *repository.ReportRepo) *ReportHandler {
	return &ReportHandler{Reports: r}
}

// UserSpending handles GET /reports/user-spending/:id.  Only Confirmed
// bookings contribute; a user with none yields zero.
func (h *ReportHandler) UserSpending(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}
	total, err := h.Reports.UserTotalSpending(c.Request().Context(), userID)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"userId":        userID,
		"totalSpending": total,
	})
}

// PopularDestinations handles GET /reports/popular-destinations.
func (h *ReportHandler) PopularDestinations(c echo.Context) error {
	dests, err := h.Reports.PopularDestinations(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "destinations": dests})
}

// DashboardStats handles GET /reports/dashboard-stats.
func (h *ReportHandler) DashboardStats(c echo.Context) error {
	stats, err := h.Reports.Dashboard(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "stats": stats})
}

// HotelsAboveAveragePrice handles GET /reports/hotels-above-average-price.
func (h *ReportHandler) HotelsAboveAveragePrice(c echo.Context) error {
	hotels, err := h.Reports.HotelsAboveAveragePrice(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "hotels": hotels})
}

// UsersWithBookings handles GET /reports/users-with-bookings.
func (h *ReportHandler) UsersWithBookings(c echo.Context) error {
	users, err := h.Reports.UsersWithBookings(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "users": users})
}

// DestinationsNotInItineraries handles GET /reports/destinations-not-in-itineraries.
func (h *ReportHandler) DestinationsNotInItineraries(c echo.Context) error {
	dests, err := h.Reports.DestinationsNotInItineraries(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "destinations": dests})
}

// BookingsWithHotelDetails handles GET /reports/bookings-with-hotel-details.
func (h *ReportHandler) BookingsWithHotelDetails(c echo.Context) error {
	bookings, err := h.Reports.BookingsWithHotelDetails(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "bookings": bookings})
}

// UsersBookingCount handles GET /reports/users-booking-count.
func (h *ReportHandler) UsersBookingCount(c echo.Context) error {
	users, err := h.Reports.UsersBookingCount(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "users": users})
}

// HotelsBookingStats handles GET /reports/hotels-booking-stats.
func (h *ReportHandler) HotelsBookingStats(c echo.Context) error {
	stats, err := h.Reports.HotelsBookingStats(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "hotels": stats})
}
