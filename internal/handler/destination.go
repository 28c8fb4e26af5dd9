package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/booking"
	"github.com/iliyamo/travel-booking/internal/model"
	"github.com/iliyamo/travel-booking/internal/repository"
)

// DestinationHandler serves destination CRUD and the derived popularity
// endpoint.  Popularity is always computed from the current Includes
// count; no tier is ever stored.
type DestinationHandler struct {
	Dests *repository.DestinationRepo
}

func NewDestinationHandler(d *repository.DestinationRepo) *DestinationHandler {
	return &DestinationHandler{Dests: d}
}

// List handles GET /destinations.
func (h *DestinationHandler) List(c echo.Context) error {
	dests, err := h.Dests.List(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "destinations": dests})
}

type createDestinationReq struct {
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
}

// Create handles POST /destination/create.
func (h *DestinationHandler) Create(c echo.Context) error {
	var req createDestinationReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Location == "" || req.Type == "" {
		return fail(c, http.StatusBadRequest, "name, location and type are required")
	}
	id, err := h.Dests.Create(c.Request().Context(), model.Destination{
		Name:        req.Name,
		Location:    req.Location,
		Type:        req.Type,
		Description: req.Description,
		Rating:      req.Rating,
	})
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Destination created successfully",
		"destId":  id,
	})
}

// Delete handles DELETE /destination/delete/:id.  Includes rows go first
// in the same transaction so the popularity count never sees a dangling
// link.
func (h *DestinationHandler) Delete(c echo.Context) error {
	destID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid destination id")
	}
	if err := h.Dests.Delete(c.Request().Context(), destID); err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Destination deleted successfully"})
}

// Popularity handles GET /destination/popularity/:id.
func (h *DestinationHandler) Popularity(c echo.Context) error {
	destID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid destination id")
	}
	count, err := h.Dests.IncludeCount(c.Request().Context(), destID)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":          true,
		"destId":           destID,
		"totalItineraries": count,
		"popularityStatus": booking.PopularityTier(count),
	})
}

// Itineraries handles GET /destination/itineraries/:id.
func (h *DestinationHandler) Itineraries(c echo.Context) error {
	destID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid destination id")
	}
	its, err := h.Dests.ItinerariesFor(c.Request().Context(), destID)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "itineraries": its})
}
