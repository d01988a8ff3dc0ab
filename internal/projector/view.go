package projector

import (
	"time"

	"flightwatch/internal/models/entities"
)

// TelemetryView is the formatted live position block.
type TelemetryView struct {
	Altitude string `json:"altitude,omitempty"`
	Speed    string `json:"speed,omitempty"`
	Heading  string `json:"heading,omitempty"`
}

// FlightView bundles every derived value a flight screen renders.
type FlightView struct {
	StatusCategory  StatusCategory `json:"status_category"`
	DepartureDate   string         `json:"departure_date"`
	DepartureClock  string         `json:"departure_clock"`
	ArrivalClock    string         `json:"arrival_clock"`
	Duration        string         `json:"duration"`
	DepartsRelative string         `json:"departs_relative"`
	Delayed         bool           `json:"delayed"`
	Framing         *RouteFraming  `json:"framing,omitempty"`
	Progress        *RouteProgress `json:"progress,omitempty"`
	Telemetry       *TelemetryView `json:"telemetry,omitempty"`
}

// BuildFlightView projects a flight and its airports at instant now. Either
// airport may be nil, in which case framing and progress are omitted.
func BuildFlightView(flight entities.Flight, departure, arrival *entities.Airport, now time.Time) FlightView {
	view := FlightView{
		StatusCategory:  ClassifyStatus(flight.Status),
		DepartureDate:   FormatDate(flight.DepartureTime),
		DepartureClock:  FormatClock(flight.DepartureTime),
		ArrivalClock:    FormatClock(flight.ArrivalTime),
		Duration:        FormatDuration(MinutesBetween(flight.DepartureTime, flight.ArrivalTime)).String(),
		DepartsRelative: RelativeTime(flight.DepartureTime, now),
	}

	if delay, ok := flight.Delay.Get(); ok {
		estimated := flight.DepartureTime.Add(time.Duration(delay) * time.Minute)
		view.Delayed = IsDelayed(flight.DepartureTime, estimated)
	}

	if framing, ok := ComputeRouteFraming(departure, arrival); ok {
		view.Framing = &framing
	}

	if flight.Status.InProgress() {
		if progress, ok := ComputeRouteProgress(flight, departure, arrival); ok {
			view.Progress = &progress
		}
		view.Telemetry = buildTelemetryView(flight.Telemetry)
	}

	return view
}

func buildTelemetryView(t entities.Telemetry) *TelemetryView {
	tv := &TelemetryView{}
	if alt, ok := t.Altitude.Get(); ok {
		tv.Altitude = FormatAltitude(alt)
	}
	if spd, ok := t.Speed.Get(); ok {
		tv.Speed = FormatSpeed(spd)
	}
	if hdg, ok := t.Heading.Get(); ok {
		tv.Heading = FormatHeading(hdg)
	}
	return tv
}
