package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/travel-booking/internal/model"
)

// HotelRepo provides read access to the Hotel table. Hotels are
// effectively immutable to the booking core; price edits are out of
// scope, which is why the computed booking total can be frozen at
// creation time.
type HotelRepo struct{ db *sql.DB }

// NewHotelRepo returns a new HotelRepo bound to the given database.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

// List returns all hotels ordered by name.
func (r *HotelRepo) List(ctx context.Context) ([]model.Hotel, error) {
	const q = `SELECT HotelID, Name, Location, PricePerNight, Rating, COALESCE(AvailableRooms, 0)
	           FROM Hotel ORDER BY Name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Hotel, 0)
	for rows.Next() {
		var h model.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Location, &h.PricePerNight, &h.Rating, &h.AvailableRooms); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// NightlyRate returns a hotel's price per night, or ErrHotelNotFound
// when the id does not resolve.
func (r *HotelRepo) NightlyRate(ctx context.Context, hotelID uint64) (float64, error) {
	return nightlyRate(ctx, r.db, hotelID)
}

// NightlyRateTx is the transactional variant used inside the booking
// creation transaction so the rate read and the insert see one snapshot.
func (r *HotelRepo) NightlyRateTx(ctx context.Context, tx *sql.Tx, hotelID uint64) (float64, error) {
	return nightlyRate(ctx, tx, hotelID)
}

// querier is the subset of *sql.DB / *sql.Tx the rate lookup needs.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func nightlyRate(ctx context.Context, q querier, hotelID uint64) (float64, error) {
	var rate float64
	err := q.QueryRowContext(ctx,
		"SELECT PricePerNight FROM Hotel WHERE HotelID = ?", hotelID).Scan(&rate)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrHotelNotFound
	}
	return rate, err
}
