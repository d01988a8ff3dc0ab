package dtos

// TrackFlightRequest opens a tracking session
type TrackFlightRequest struct {
	FlightNumber string `json:"flight_number"`
}

// NotifyMeRequest subscribes to updates for a flight
type NotifyMeRequest struct {
	FlightNumber string `json:"flight_number"`
}
