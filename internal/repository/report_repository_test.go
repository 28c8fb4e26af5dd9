package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportRepo(t *testing.T) (*ReportRepo, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewReportRepo(db), mock, func() { _ = db.Close() }
}

func TestPopularDestinationsTiering(t *testing.T) {
	r, mock, done := newReportRepo(t)
	defer done()

	mock.ExpectQuery(`SELECT d.DestID, d.Name, d.Location, d.Type, d.Rating`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"DestID", "Name", "Location", "Type", "Rating", "count"}).
			AddRow(1, "Old Town", "Prague", "Historical", 4.7, 5).
			AddRow(2, "North Beach", "Split", "Beach", 4.2, 2).
			AddRow(3, "Quiet Valley", "Bled", "Nature", 4.9, 0))

	dests, err := r.PopularDestinations(context.Background())
	require.NoError(t, err)
	require.Len(t, dests, 3)

	assert.Equal(t, "Popular", dests[0].PopularityStatus)
	assert.Equal(t, 5, dests[0].TotalItineraries)
	assert.Equal(t, "Moderate", dests[1].PopularityStatus)
	assert.Equal(t, "Not Popular", dests[2].PopularityStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRoundsAverageRating(t *testing.T) {
	r, mock, done := newReportRepo(t)
	defer done()

	mock.ExpectQuery(`SELECT \(SELECT COUNT\(\*\) FROM Booking\)`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"bookings", "users", "destinations", "avgRating", "revenue"}).
			AddRow(12, 4, 9, 4.23456, 18250.50))

	stats, err := r.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, stats.TotalBookings)
	assert.Equal(t, 4, stats.TotalUsers)
	assert.Equal(t, 9, stats.TotalDestinations)
	assert.Equal(t, 4.23, stats.AvgHotelRating)
	assert.Equal(t, 18250.50, stats.TotalRevenue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserTotalSpendingDefaultsToZero(t *testing.T) {
	r, mock, done := newReportRepo(t)
	defer done()

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(TotalPrice\), 0\) FROM Booking`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(0))

	total, err := r.UserTotalSpending(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
