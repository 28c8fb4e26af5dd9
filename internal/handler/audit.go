package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/repository"
)

// auditListLimit caps the recent-audit listing.
const auditListLimit = 100

// AuditHandler serves the read-only audit trail endpoints.  The trail is
// append-only; nothing here can modify it.
type AuditHandler struct {
	Audits *repository.AuditRepo
}

func NewAuditHandler(a *repository.AuditRepo) *AuditHandler {
	return &AuditHandler{Audits: a}
}

// List handles GET /audit/bookings, newest first.
func (h *AuditHandler) List(c echo.Context) error {
	entries, err := h.Audits.ListRecent(c.Request().Context(), auditListLimit)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "audits": entries})
}

// ByBooking handles GET /audit/bookings/booking/:id.
func (h *AuditHandler) ByBooking(c echo.Context) error {
	bookingID, err := parseID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid booking id")
	}
	entries, err := h.Audits.ListByBooking(c.Request().Context(), bookingID)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "audits": entries})
}
