package dtos

import (
	"fmt"
	"time"

	"flightwatch/internal/models/entities"
)

// ---- FLIGHT DATA API ----

// APIFlight is a flight record as returned by the flight data API
type APIFlight struct {
	FlightNumber     string   `json:"flightNumber"`
	Airline          string   `json:"airline"`
	DepartureAirport string   `json:"departureAirport"`
	ArrivalAirport   string   `json:"arrivalAirport"`
	DepartureTime    string   `json:"departureTime"` // ISO 8601
	ArrivalTime      string   `json:"arrivalTime"`   // ISO 8601
	Status           string   `json:"status"`
	Gate             *string  `json:"gate"`     // nullable
	Terminal         *string  `json:"terminal"` // nullable
	Aircraft         *string  `json:"aircraft"` // nullable
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	Altitude         *float64 `json:"altitude"`
	Speed            *float64 `json:"speed"`
	Heading          *float64 `json:"heading"`
	Delay            *int     `json:"delay"` // minutes
}

// APIPosition is a live position sample as returned by the flight data API
type APIPosition struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Altitude  *float64 `json:"altitude"`
	Speed     *float64 `json:"speed"`
	Heading   *float64 `json:"heading"`
}

// APIAirport is an airport record as returned by the flight data API
type APIAirport struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ToTelemetry converts nullable wire fields into optional telemetry
func (p APIPosition) ToTelemetry() entities.Telemetry {
	return entities.Telemetry{
		Latitude:  optionalFrom(p.Latitude),
		Longitude: optionalFrom(p.Longitude),
		Altitude:  optionalFrom(p.Altitude),
		Speed:     optionalFrom(p.Speed),
		Heading:   optionalFrom(p.Heading),
	}
}

// ToEntity converts the wire record into a Flight
func (f APIFlight) ToEntity() (*entities.Flight, error) {
	dep, err := time.Parse(time.RFC3339, f.DepartureTime)
	if err != nil {
		return nil, fmt.Errorf("invalid departureTime %q: %w", f.DepartureTime, err)
	}
	arr, err := time.Parse(time.RFC3339, f.ArrivalTime)
	if err != nil {
		return nil, fmt.Errorf("invalid arrivalTime %q: %w", f.ArrivalTime, err)
	}

	flight := &entities.Flight{
		FlightNumber:     f.FlightNumber,
		Airline:          f.Airline,
		DepartureAirport: f.DepartureAirport,
		ArrivalAirport:   f.ArrivalAirport,
		DepartureTime:    dep.UTC(),
		ArrivalTime:      arr.UTC(),
		Status:           entities.FlightStatus(f.Status),
		Gate:             f.Gate,
		Terminal:         f.Terminal,
		Aircraft:         f.Aircraft,
		Delay:            optionalFrom(f.Delay),
	}
	flight.Telemetry = APIPosition{
		Latitude:  f.Latitude,
		Longitude: f.Longitude,
		Altitude:  f.Altitude,
		Speed:     f.Speed,
		Heading:   f.Heading,
	}.ToTelemetry()

	return flight, nil
}

// ToEntity converts the wire record into an Airport
func (a APIAirport) ToEntity() *entities.Airport {
	return &entities.Airport{
		Code:      a.Code,
		Name:      a.Name,
		City:      a.City,
		Country:   a.Country,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
	}
}

func optionalFrom[T any](p *T) entities.Optional[T] {
	if p == nil {
		return entities.None[T]()
	}
	return entities.Some(*p)
}
