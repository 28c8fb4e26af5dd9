package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/travel-booking/internal/booking"
	"github.com/iliyamo/travel-booking/internal/model"
)

// ItineraryRepo provides access to the Itinerary table and its Includes
// links.
type ItineraryRepo struct{ db *sql.DB }

// NewItineraryRepo returns a new ItineraryRepo bound to the given database.
func NewItineraryRepo(db *sql.DB) *ItineraryRepo { return &ItineraryRepo{db: db} }

// CreateWithDestinations inserts an itinerary and its Includes rows in
// one transaction and returns the new itinerary ID. A failure on any
// link leaves no partial itinerary behind.
func (r *ItineraryRepo) CreateWithDestinations(ctx context.Context, it model.Itinerary, destIDs []uint64) (uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	res, err := tx.ExecContext(ctx,
		"INSERT INTO Itinerary (UserID, Title, StartDate, EndDate, TotalCost) VALUES (?,?,?,?,?)",
		it.UserID, it.Title, it.StartDate, it.EndDate, it.TotalCost)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for _, destID := range destIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO Includes (ItineraryID, DestID) VALUES (?,?)", id, destID); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return uint64(id), nil
}

// UserItinerary is one entry of a user's itinerary list with the names
// of the included destinations flattened to a comma-separated string.
type UserItinerary struct {
	ItineraryID  uint64  `json:"ItineraryID"`
	Title        string  `json:"Title"`
	StartDate    string  `json:"StartDate"`
	EndDate      string  `json:"EndDate"`
	TotalCost    float64 `json:"TotalCost"`
	Destinations string  `json:"Destinations"`
}

// ListByUser returns a user's itineraries, latest start date first.
func (r *ItineraryRepo) ListByUser(ctx context.Context, userID uint64) ([]UserItinerary, error) {
	const q = `SELECT i.ItineraryID, i.Title, i.StartDate, i.EndDate, i.TotalCost,
	                  COALESCE(GROUP_CONCAT(d.Name SEPARATOR ', '), '')
	           FROM Itinerary i
	           LEFT JOIN Includes inc ON i.ItineraryID = inc.ItineraryID
	           LEFT JOIN Destination d ON inc.DestID = d.DestID
	           WHERE i.UserID = ?
	           GROUP BY i.ItineraryID, i.Title, i.StartDate, i.EndDate, i.TotalCost
	           ORDER BY i.StartDate DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]UserItinerary, 0)
	for rows.Next() {
		var it UserItinerary
		var start, end time.Time
		if err := rows.Scan(&it.ItineraryID, &it.Title, &start, &end, &it.TotalCost, &it.Destinations); err != nil {
			return nil, err
		}
		it.StartDate = start.Format(booking.DateLayout)
		it.EndDate = end.Format(booking.DateLayout)
		out = append(out, it)
	}
	return out, rows.Err()
}

// Delete removes an itinerary; Includes rows cascade via the foreign key.
func (r *ItineraryRepo) Delete(ctx context.Context, itineraryID uint64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM Itinerary WHERE ItineraryID = ?", itineraryID)
	return err
}
