package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/travel-booking/internal/booking"
	"github.com/iliyamo/travel-booking/internal/model"
)

// DestinationRepo provides access to the Destination table and the
// Includes join table that links destinations to itineraries.
type DestinationRepo struct{ db *sql.DB }

// NewDestinationRepo returns a new DestinationRepo bound to the given database.
func NewDestinationRepo(db *sql.DB) *DestinationRepo { return &DestinationRepo{db: db} }

// List returns all destinations ordered by name.
func (r *DestinationRepo) List(ctx context.Context) ([]model.Destination, error) {
	const q = `SELECT DestID, Name, Location, Type, COALESCE(Description, ''), Rating
	           FROM Destination ORDER BY Name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Destination, 0)
	for rows.Next() {
		var d model.Destination
		if err := rows.Scan(&d.ID, &d.Name, &d.Location, &d.Type, &d.Description, &d.Rating); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Create inserts a destination and returns its ID.
func (r *DestinationRepo) Create(ctx context.Context, d model.Destination) (uint64, error) {
	const q = `INSERT INTO Destination (Name, Location, Type, Description, Rating) VALUES (?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q, d.Name, d.Location, d.Type, d.Description, d.Rating)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Delete removes a destination and its Includes references in one
// transaction, so the popularity count can never see a dangling link.
func (r *DestinationRepo) Delete(ctx context.Context, destID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, "DELETE FROM Includes WHERE DestID = ?", destID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM Destination WHERE DestID = ?", destID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// IncludeCount returns how many itineraries reference the destination.
// The popularity tier is always derived from this count at call time and
// never cached in a column.
func (r *DestinationRepo) IncludeCount(ctx context.Context, destID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM Includes WHERE DestID = ?", destID).Scan(&n)
	return n, err
}

// DestinationItinerary is one itinerary that visits a destination,
// joined with its creator and the destination's own attributes.
type DestinationItinerary struct {
	ItineraryID     uint64  `json:"ItineraryID"`
	Title           string  `json:"Title"`
	CreatedBy       string  `json:"CreatedBy"`
	StartDate       string  `json:"StartDate"`
	EndDate         string  `json:"EndDate"`
	DurationDays    int     `json:"DurationDays"`
	TotalCost       float64 `json:"TotalCost"`
	DestinationName string  `json:"DestinationName"`
	Type            string  `json:"Type"`
	Rating          float64 `json:"Rating"`
}

// ItinerariesFor returns the itineraries that include the destination,
// ordered by start date.
func (r *DestinationRepo) ItinerariesFor(ctx context.Context, destID uint64) ([]DestinationItinerary, error) {
	const q = `SELECT DISTINCT i.ItineraryID, i.Title,
	                  CONCAT(u.FirstName, ' ', u.LastName),
	                  i.StartDate, i.EndDate,
	                  DATEDIFF(i.EndDate, i.StartDate),
	                  i.TotalCost, d.Name, d.Type, d.Rating
	           FROM Itinerary i
	           JOIN Includes inc ON i.ItineraryID = inc.ItineraryID
	           JOIN Destination d ON inc.DestID = d.DestID
	           JOIN User u ON i.UserID = u.UserID
	           WHERE d.DestID = ?
	           ORDER BY i.StartDate`
	rows, err := r.db.QueryContext(ctx, q, destID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]DestinationItinerary, 0)
	for rows.Next() {
		var it DestinationItinerary
		var start, end time.Time
		if err := rows.Scan(&it.ItineraryID, &it.Title, &it.CreatedBy,
			&start, &end, &it.DurationDays, &it.TotalCost,
			&it.DestinationName, &it.Type, &it.Rating); err != nil {
			return nil, err
		}
		it.StartDate = start.Format(booking.DateLayout)
		it.EndDate = end.Format(booking.DateLayout)
		out = append(out, it)
	}
	return out, rows.Err()
}
