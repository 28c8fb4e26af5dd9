package model

import "time"

// Destination mirrors a row of the `Destination` table. Serialized
// directly by the listing endpoint.
type Destination struct {
	ID          uint64  `json:"DestID"`      // Destination.DestID
	Name        string  `json:"Name"`        // Destination.Name
	Location    string  `json:"Location"`    // Destination.Location
	Type        string  `json:"Type"`        // Destination.Type
	Description string  `json:"Description"` // Destination.Description
	Rating      float64 `json:"Rating"`      // Destination.Rating
}

// Itinerary mirrors a row of the `Itinerary` table. Destinations are
// linked through the Includes join table rather than stored inline.
type Itinerary struct {
	ID        uint64    // Itinerary.ItineraryID
	UserID    uint64    // Itinerary.UserID
	Title     string    // Itinerary.Title
	StartDate time.Time // Itinerary.StartDate
	EndDate   time.Time // Itinerary.EndDate
	TotalCost float64   // Itinerary.TotalCost
}
