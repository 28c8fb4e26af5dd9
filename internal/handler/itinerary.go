package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/booking"
	"github.com/iliyamo/travel-booking/internal/model"
	"github.com/iliyamo/travel-booking/internal/repository"
)

// ItineraryHandler serves itinerary creation, listing and deletion.
type ItineraryHandler struct {
	Itineraries *repository.ItineraryRepo
}

func NewItineraryHandler(i *repository.ItineraryRepo) *ItineraryHandler {
	return &ItineraryHandler{Itineraries: i}
}

type createItineraryReq struct {
	UserID       uint64   `json:"userId"`
	Title        string   `json:"title"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	TotalCost    float64  `json:"totalCost"`
	Destinations []uint64 `json:"destinations"`
}

// Create handles POST /itinerary/create.  The itinerary and its Includes
// links are written in one transaction by the repository.
func (h *ItineraryHandler) Create(c echo.Context) error {
	var req createItineraryReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == 0 || req.Title == "" {
		return fail(c, http.StatusBadRequest, "userId and title are required")
	}
	start, err := booking.ParseDate(req.StartDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid start date, expected YYYY-MM-DD")
	}
	end, err := booking.ParseDate(req.EndDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid end date, expected YYYY-MM-DD")
	}
	if end.Before(start) {
		return fail(c, http.StatusBadRequest, "end date must not be before start date")
	}

	id, err := h.Itineraries.CreateWithDestinations(c.Request().Context(), model.Itinerary{
		UserID:    req.UserID,
		Title:     req.Title,
		StartDate: start,
		EndDate:   end,
		TotalCost: req.TotalCost,
	}, req.Destinations)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success":     true,
		"message":     "Itinerary created successfully",
		"itineraryId": id,
	})
}

// ListByUser handles GET /itineraries/user/:id.
func (h *ItineraryHandler) ListByUser(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}
	its, err := h.Itineraries.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "itineraries": its})
}

// Delete handles DELETE /itinerary/delete/:id.
func (h *ItineraryHandler) Delete(c echo.Context) error {
	itineraryID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid itinerary id")
	}
	if err := h.Itineraries.Delete(c.Request().Context(), itineraryID); err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Itinerary deleted successfully"})
}
