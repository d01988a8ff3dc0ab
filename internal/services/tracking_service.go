package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"flightwatch/internal/logging"
	"flightwatch/internal/metrics"
	"flightwatch/internal/models/dtos"
	"flightwatch/internal/models/entities"
	"flightwatch/internal/projector"
	"flightwatch/internal/providers"
	"flightwatch/internal/tracking"
)

type TrackingService struct {
	Flights  *FlightsService
	Fetcher  providers.PositionFetcher
	Sessions *tracking.Registry
	Interval time.Duration
	Metrics  *metrics.MetricsRegistry
	Now      func() time.Time
}

func NewTrackingService(flights *FlightsService, fetcher providers.PositionFetcher, interval time.Duration, m *metrics.MetricsRegistry) *TrackingService {
	return &TrackingService{
		Flights:  flights,
		Fetcher:  fetcher,
		Sessions: tracking.NewRegistry(),
		Interval: interval,
		Metrics:  m,
		Now:      time.Now,
	}
}

// StartSession loads a flight and opens a session for it. Polling starts
// only when the flight is ACTIVE.
func (svc *TrackingService) StartSession(ctx context.Context, flightNumber string) (*dtos.TrackingSessionResponse, error) {
	flight, err := svc.Flights.LoadFlight(ctx, flightNumber)
	if err != nil {
		return nil, err
	}

	s := tracking.NewSession(uuid.NewString(), flight, svc.Fetcher, svc.Interval, svc.Metrics)
	if flight.Status == entities.FlightStatusActive {
		if err := s.StartPolling(); err != nil {
			return nil, err
		}
	}

	svc.Sessions.Add(s)
	svc.Metrics.SetActiveSessions(svc.Sessions.Len())
	logging.Info("Tracking session opened", "session_id", s.ID, "flight_id", s.FlightNumber, "status", string(flight.Status))

	return svc.Describe(ctx, s), nil
}

// Session returns the open session with id
func (svc *TrackingService) Session(id string) (*tracking.Session, error) {
	return svc.Sessions.Get(id)
}

// GetSession returns the current snapshot of a session
func (svc *TrackingService) GetSession(ctx context.Context, id string) (*dtos.TrackingSessionResponse, error) {
	s, err := svc.Sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return svc.Describe(ctx, s), nil
}

// Pause keeps the poll schedule but stops fetching
func (svc *TrackingService) Pause(ctx context.Context, id string) (*dtos.TrackingSessionResponse, error) {
	s, err := svc.Sessions.Get(id)
	if err != nil {
		return nil, err
	}
	s.Pause()
	return svc.Describe(ctx, s), nil
}

// Resume re-enables fetching, restarting the task if it was stopped
func (svc *TrackingService) Resume(ctx context.Context, id string) (*dtos.TrackingSessionResponse, error) {
	s, err := svc.Sessions.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.Resume(); err != nil {
		return nil, err
	}
	return svc.Describe(ctx, s), nil
}

// Refresh reloads the flight once. A flight that left ACTIVE stops
// polling; one that became ACTIVE starts it.
func (svc *TrackingService) Refresh(ctx context.Context, id string) (*dtos.TrackingSessionResponse, error) {
	s, err := svc.Sessions.Get(id)
	if err != nil {
		return nil, err
	}

	flight, err := svc.Flights.LoadFlight(ctx, s.FlightNumber)
	if err != nil {
		return nil, err
	}
	s.ReplaceFlight(flight)

	if flight.Status == entities.FlightStatusActive && !s.Running() {
		if err := s.StartPolling(); err != nil {
			return nil, err
		}
	}
	return svc.Describe(ctx, s), nil
}

// Stop closes a session and its poll task
func (svc *TrackingService) Stop(id string) error {
	if err := svc.Sessions.Remove(id); err != nil {
		return err
	}
	svc.Metrics.SetActiveSessions(svc.Sessions.Len())
	logging.Info("Tracking session closed", "session_id", id)
	return nil
}

// ReapIdle closes sessions nobody has looked at within ttl
func (svc *TrackingService) ReapIdle(ttl time.Duration) []string {
	ids := svc.Sessions.RemoveIdle(ttl)
	if len(ids) > 0 {
		svc.Metrics.SetActiveSessions(svc.Sessions.Len())
	}
	return ids
}

// Shutdown closes every session
func (svc *TrackingService) Shutdown() {
	svc.Sessions.CloseAll()
	svc.Metrics.SetActiveSessions(0)
}

// Describe projects a session into its API shape. Airports that cannot be
// resolved are omitted along with the framing.
func (svc *TrackingService) Describe(ctx context.Context, s *tracking.Session) *dtos.TrackingSessionResponse {
	snap := s.Snapshot()

	dep, arr, err := svc.Flights.ResolveRoute(ctx, snap)
	if err != nil {
		logging.Warn("Route airports unavailable", "session_id", s.ID, "error", err.Error())
		dep, arr = nil, nil
	}

	resp := &dtos.TrackingSessionResponse{
		SessionID:        s.ID,
		Polling:          s.Polling(),
		Active:           snap.Status == entities.FlightStatusActive,
		IntervalSeconds:  s.Interval.Seconds(),
		Flight:           snap,
		DepartureAirport: dep,
		ArrivalAirport:   arr,
		View:             projector.BuildFlightView(snap, dep, arr, svc.Now()),
		StartedAt:        s.StartedAt,
	}
	if last := s.LastUpdate(); !last.IsZero() {
		resp.LastUpdate = &last
	}
	return resp
}
