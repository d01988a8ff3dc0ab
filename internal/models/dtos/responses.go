package dtos

import (
	"time"

	"flightwatch/internal/models/entities"
	"flightwatch/internal/projector"
)

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ErrorCode    string `json:"error_code,omitempty"`
	Retryable    bool   `json:"retryable,omitempty"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// ---- FLIGHTS ----

// FlightDetailsResponse is the full flight screen payload
type FlightDetailsResponse struct {
	Flight            entities.Flight      `json:"flight"`
	DepartureAirport  *entities.Airport    `json:"departure_airport,omitempty"`
	ArrivalAirport    *entities.Airport    `json:"arrival_airport,omitempty"`
	ConnectingFlights []FlightSummary      `json:"connecting_flights,omitempty"`
	View              projector.FlightView `json:"view"`
}

// FlightSummary is a list row for a flight
type FlightSummary struct {
	FlightNumber     string                   `json:"flight_number"`
	Airline          string                   `json:"airline"`
	DepartureAirport string                   `json:"departure_airport"`
	ArrivalAirport   string                   `json:"arrival_airport"`
	DepartureTime    time.Time                `json:"departure_time"`
	ArrivalTime      time.Time                `json:"arrival_time"`
	Status           entities.FlightStatus    `json:"status"`
	StatusCategory   projector.StatusCategory `json:"status_category"`
	Duration         string                   `json:"duration"`
	Gate             *string                  `json:"gate,omitempty"`
	Terminal         *string                  `json:"terminal,omitempty"`
}

// NewFlightSummary projects a flight into a list row
func NewFlightSummary(f entities.Flight) FlightSummary {
	return FlightSummary{
		FlightNumber:     f.FlightNumber,
		Airline:          f.Airline,
		DepartureAirport: f.DepartureAirport,
		ArrivalAirport:   f.ArrivalAirport,
		DepartureTime:    f.DepartureTime,
		ArrivalTime:      f.ArrivalTime,
		Status:           f.Status,
		StatusCategory:   projector.ClassifyStatus(f.Status),
		Duration:         projector.FormatDuration(projector.MinutesBetween(f.DepartureTime, f.ArrivalTime)).String(),
		Gate:             f.Gate,
		Terminal:         f.Terminal,
	}
}

// NewFlightSummaries projects a list of flights
func NewFlightSummaries(flights []entities.Flight) []FlightSummary {
	out := make([]FlightSummary, 0, len(flights))
	for _, f := range flights {
		out = append(out, NewFlightSummary(f))
	}
	return out
}

// ---- AIRPORTS ----

// AirportBoardResponse lists flights touching an airport
type AirportBoardResponse struct {
	Airport entities.Airport       `json:"airport"`
	Framing projector.RouteFraming `json:"framing"`
	Flights []FlightSummary        `json:"flights"`
}

// ---- SEARCH ----

// SearchResponse tells the client which screen a query resolves to
type SearchResponse struct {
	Query  string `json:"query"`
	Kind   string `json:"kind"`
	Target string `json:"target"`
}

// ---- TRACKING ----

// TrackingSessionResponse is a snapshot of one tracking session
type TrackingSessionResponse struct {
	SessionID        string               `json:"session_id"`
	Polling          bool                 `json:"polling"`
	Active           bool                 `json:"active"`
	IntervalSeconds  float64              `json:"interval_seconds"`
	Flight           entities.Flight      `json:"flight"`
	DepartureAirport *entities.Airport    `json:"departure_airport,omitempty"`
	ArrivalAirport   *entities.Airport    `json:"arrival_airport,omitempty"`
	View             projector.FlightView `json:"view"`
	StartedAt        time.Time            `json:"started_at"`
	LastUpdate       *time.Time           `json:"last_update,omitempty"`
}

// ---- NOTIFICATIONS ----

// NotificationListResponse is the notification inbox
type NotificationListResponse struct {
	Notifications []entities.Notification `json:"notifications"`
	Unread        int64                   `json:"unread"`
}
