package entities

import "time"

// FlightStatus is the lifecycle state reported by the flight-data source.
type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "SCHEDULED"
	FlightStatusActive    FlightStatus = "ACTIVE"
	FlightStatusLanded    FlightStatus = "LANDED"
	FlightStatusCancelled FlightStatus = "CANCELLED"
	FlightStatusDiverted  FlightStatus = "DIVERTED"
	FlightStatusDelayed   FlightStatus = "DELAYED"
)

// AllFlightStatuses lists every known status in declaration order.
var AllFlightStatuses = []FlightStatus{
	FlightStatusScheduled,
	FlightStatusActive,
	FlightStatusLanded,
	FlightStatusCancelled,
	FlightStatusDiverted,
	FlightStatusDelayed,
}

// InProgress reports whether the flight is airborne and receives position updates.
func (s FlightStatus) InProgress() bool {
	return s == FlightStatusActive
}

// Telemetry is a live position sample. Fields missing from a sample stay invalid.
type Telemetry struct {
	Latitude  Optional[float64] `json:"latitude"`
	Longitude Optional[float64] `json:"longitude"`
	Altitude  Optional[float64] `json:"altitude"` // feet
	Speed     Optional[float64] `json:"speed"`    // knots, ground speed
	Heading   Optional[float64] `json:"heading"`  // degrees true
}

// HasPosition reports whether both coordinates are present.
func (t Telemetry) HasPosition() bool {
	return t.Latitude.Valid && t.Longitude.Valid
}

// Flight is a single scheduled, in-progress or completed journey.
type Flight struct {
	FlightNumber     string        `json:"flight_number"`
	Airline          string        `json:"airline"`
	DepartureAirport string        `json:"departure_airport"`
	ArrivalAirport   string        `json:"arrival_airport"`
	DepartureTime    time.Time     `json:"departure_time"`
	ArrivalTime      time.Time     `json:"arrival_time"`
	Status           FlightStatus  `json:"status"`
	Gate             *string       `json:"gate,omitempty"`
	Terminal         *string       `json:"terminal,omitempty"`
	Aircraft         *string       `json:"aircraft,omitempty"`
	Telemetry        Telemetry     `json:"telemetry"`
	Delay            Optional[int] `json:"delay"` // minutes
}

// ApplyTelemetry overwrites the telemetry fields present in update and leaves
// every other field of the flight untouched. Applying the same update twice is
// the same as applying it once.
func (f *Flight) ApplyTelemetry(update Telemetry) {
	if update.Latitude.Valid {
		f.Telemetry.Latitude = update.Latitude
	}
	if update.Longitude.Valid {
		f.Telemetry.Longitude = update.Longitude
	}
	if update.Altitude.Valid {
		f.Telemetry.Altitude = update.Altitude
	}
	if update.Speed.Valid {
		f.Telemetry.Speed = update.Speed
	}
	if update.Heading.Valid {
		f.Telemetry.Heading = update.Heading
	}
}
