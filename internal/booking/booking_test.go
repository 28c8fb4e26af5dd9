package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestNightsAndCost(t *testing.T) {
	checkIn := date(t, "2025-06-10")
	checkOut := date(t, "2025-06-12")

	assert.Equal(t, 2, Nights(checkIn, checkOut))
	assert.Equal(t, 200.0, Cost(100, checkIn, checkOut))

	// Same-day and inverted ranges price at zero or below; handlers
	// reject them before any charge is computed.
	assert.Equal(t, 0, Nights(checkIn, checkIn))
	assert.Equal(t, 0.0, Cost(100, checkIn, checkIn))
	assert.Equal(t, -200.0, Cost(100, checkOut, checkIn))
}

func TestValidRange(t *testing.T) {
	in := date(t, "2025-06-10")
	out := date(t, "2025-06-11")

	assert.True(t, ValidRange(in, out))
	assert.False(t, ValidRange(in, in))
	assert.False(t, ValidRange(out, in))
}

// The hotel predicate treats stays as half-open intervals while the user
// predicate closes both ends. The boundary cases below pin down where
// the two disagree.
func TestOverlapPredicates(t *testing.T) {
	cases := []struct {
		name                   string
		aIn, aOut, bIn, bOut   string
		hotelClash, userClash  bool
	}{
		{"disjoint before", "2025-06-01", "2025-06-03", "2025-06-10", "2025-06-12", false, false},
		{"disjoint after", "2025-06-10", "2025-06-12", "2025-06-01", "2025-06-03", false, false},
		{"full overlap", "2025-06-01", "2025-06-10", "2025-06-03", "2025-06-05", true, true},
		{"partial overlap", "2025-06-01", "2025-06-05", "2025-06-04", "2025-06-08", true, true},
		{"identical stay", "2025-06-01", "2025-06-05", "2025-06-01", "2025-06-05", true, true},
		// Back-to-back: checkout day equals the other stay's check-in.
		// The hotel accepts it, the user check does not.
		{"back to back", "2025-06-01", "2025-06-05", "2025-06-05", "2025-06-08", false, true},
		{"back to back reversed", "2025-06-05", "2025-06-08", "2025-06-01", "2025-06-05", false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			aIn, aOut := date(t, tc.aIn), date(t, tc.aOut)
			bIn, bOut := date(t, tc.bIn), date(t, tc.bOut)

			assert.Equal(t, tc.hotelClash, HotelDatesOverlap(aIn, aOut, bIn, bOut), "hotel predicate")
			assert.Equal(t, tc.userClash, UserDatesOverlap(aIn, aOut, bIn, bOut), "user predicate")
		})
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "06/10/2025", "2025-13-01", "yesterday"} {
		_, err := ParseDate(s)
		assert.Error(t, err, s)
	}
}

func TestPopularityTier(t *testing.T) {
	assert.Equal(t, TierNotPopular, PopularityTier(0))
	assert.Equal(t, TierModerate, PopularityTier(1))
	assert.Equal(t, TierModerate, PopularityTier(2))
	assert.Equal(t, TierPopular, PopularityTier(3))
	assert.Equal(t, TierPopular, PopularityTier(10))
}
