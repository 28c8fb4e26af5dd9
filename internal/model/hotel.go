package model

// Hotel mirrors a row of the `Hotel` table. The list endpoint serializes
// hotels directly, so the JSON names match the column names the frontend
// expects.
type Hotel struct {
	ID             uint64  `json:"HotelID"`        // Hotel.HotelID
	Name           string  `json:"Name"`           // Hotel.Name
	Location       string  `json:"Location"`       // Hotel.Location
	PricePerNight  float64 `json:"PricePerNight"`  // Hotel.PricePerNight
	Rating         float64 `json:"Rating"`         // Hotel.Rating
	AvailableRooms int     `json:"AvailableRooms"` // Hotel.AvailableRooms
}
