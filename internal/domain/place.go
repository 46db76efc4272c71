package domain

// Place is one listing as returned by the API. Snapshot per fetch.
type Place struct {
	ID          string
	Title       string
	Price       float64
	Latitude    float64
	Longitude   float64
	Host        string
	Description string
	Amenities   []string
}
