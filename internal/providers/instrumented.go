package providers

import (
	"context"
	"time"

	"flightwatch/internal/metrics"
	"flightwatch/internal/models/entities"
)

// InstrumentedProvider records latency and failures of another provider
type InstrumentedProvider struct {
	next    FlightDataProvider
	metrics *metrics.MetricsRegistry
}

// Ensure InstrumentedProvider implements FlightDataProvider
var _ FlightDataProvider = (*InstrumentedProvider)(nil)

// NewInstrumentedProvider wraps next. A nil registry returns next unchanged.
func NewInstrumentedProvider(next FlightDataProvider, m *metrics.MetricsRegistry) FlightDataProvider {
	if m == nil {
		return next
	}
	return &InstrumentedProvider{next: next, metrics: m}
}

func (p *InstrumentedProvider) GetProviderType() string {
	return p.next.GetProviderType()
}

func (p *InstrumentedProvider) FetchFlightByNumber(ctx context.Context, flightNumber string) (*entities.Flight, error) {
	defer p.observe("fetch_flight", time.Now())
	f, err := p.next.FetchFlightByNumber(ctx, flightNumber)
	p.recordError("fetch_flight", err)
	return f, err
}

func (p *InstrumentedProvider) FetchFlightsByAirport(ctx context.Context, airportCode string) ([]entities.Flight, error) {
	defer p.observe("fetch_airport_flights", time.Now())
	f, err := p.next.FetchFlightsByAirport(ctx, airportCode)
	p.recordError("fetch_airport_flights", err)
	return f, err
}

func (p *InstrumentedProvider) FetchAirportByCode(ctx context.Context, code string) (*entities.Airport, error) {
	defer p.observe("fetch_airport", time.Now())
	a, err := p.next.FetchAirportByCode(ctx, code)
	p.recordError("fetch_airport", err)
	return a, err
}

func (p *InstrumentedProvider) FetchFlightPosition(ctx context.Context, flightID string) (*entities.Telemetry, error) {
	defer p.observe("fetch_position", time.Now())
	t, err := p.next.FetchFlightPosition(ctx, flightID)
	p.recordError("fetch_position", err)
	return t, err
}

func (p *InstrumentedProvider) FetchConnectingFlights(ctx context.Context, flightID string) ([]entities.Flight, error) {
	defer p.observe("fetch_connections", time.Now())
	f, err := p.next.FetchConnectingFlights(ctx, flightID)
	p.recordError("fetch_connections", err)
	return f, err
}

func (p *InstrumentedProvider) observe(operation string, start time.Time) {
	p.metrics.ProviderRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (p *InstrumentedProvider) recordError(operation string, err error) {
	if err == nil {
		return
	}
	code := ErrorCode(err)
	if code == "" {
		code = "unknown"
	}
	p.metrics.ProviderErrorsTotal.WithLabelValues(operation, code).Inc()
}
