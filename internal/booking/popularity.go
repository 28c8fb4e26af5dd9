package booking

// Popularity tiers for destinations, derived from how many itineraries
// include the destination.
const (
	TierPopular    = "Popular"
	TierModerate   = "Moderate"
	TierNotPopular = "Not Popular"
)

// PopularityTier classifies a destination by its itinerary count:
// three or more itineraries make it Popular, one or two Moderate,
// none Not Popular.
func PopularityTier(includeCount int) string {
	switch {
	case includeCount >= 3:
		return TierPopular
	case includeCount >= 1:
		return TierModerate
	default:
		return TierNotPopular
	}
}
