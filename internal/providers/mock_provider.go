package providers

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"flightwatch/internal/models/entities"
)

// MockProvider serves demo flight data from a Catalog. Positions jitter
// around the catalog's base point on every call.
type MockProvider struct {
	catalog *Catalog
	now     func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// Ensure MockProvider implements FlightDataProvider
var _ FlightDataProvider = (*MockProvider)(nil)

// NewMockProvider creates a provider over catalog
func NewMockProvider(catalog *Catalog) *MockProvider {
	return &MockProvider{
		catalog: catalog,
		now:     time.Now,
		rng:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
	}
}

// WithClock fixes the provider's notion of now
func (p *MockProvider) WithClock(now func() time.Time) *MockProvider {
	p.now = now
	return p
}

// WithSeed makes simulated positions reproducible
func (p *MockProvider) WithSeed(seed uint64) *MockProvider {
	p.mu.Lock()
	p.rng = rand.New(rand.NewPCG(seed, 0x5eed))
	p.mu.Unlock()
	return p
}

// Catalog exposes the backing demo data
func (p *MockProvider) Catalog() *Catalog {
	return p.catalog
}

// GetProviderType returns the provider type identifier
func (p *MockProvider) GetProviderType() string {
	return "mock"
}

// FetchFlightByNumber resolves listed flights first, then any number with a
// known airline prefix through the default template.
func (p *MockProvider) FetchFlightByNumber(ctx context.Context, flightNumber string) (*entities.Flight, error) {
	number, err := requireCode("flight number", flightNumber)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, NewNetworkError(err, "request cancelled")
	}

	airline, ok := p.catalog.AirlineFor(number)
	if !ok {
		return nil, NewNotFoundError("flight %s not found", number)
	}

	now := p.now()
	for _, t := range p.catalog.Flights {
		if t.Number == number {
			flight := t.Build(number, airline, "", now)
			p.attachPosition(&flight)
			return &flight, nil
		}
	}

	flight := p.catalog.DefaultFlight.Build(number, airline, "", now)
	p.attachPosition(&flight)
	return &flight, nil
}

// FetchFlightsByAirport returns the airport board for a catalog airport
func (p *MockProvider) FetchFlightsByAirport(ctx context.Context, airportCode string) ([]entities.Flight, error) {
	code, err := requireCode("airport code", airportCode)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, NewNetworkError(err, "request cancelled")
	}
	if _, ok := p.catalog.AirportByCode(code); !ok {
		return nil, NewNotFoundError("airport %s not found", code)
	}

	now := p.now()
	flights := make([]entities.Flight, 0, len(p.catalog.AirportBoard))
	for _, t := range p.catalog.AirportBoard {
		airline, _ := p.catalog.AirlineFor(t.Number)
		flight := t.Build(t.Number, airline, code, now)
		p.attachPosition(&flight)
		flights = append(flights, flight)
	}
	return flights, nil
}

// FetchAirportByCode returns NOT_FOUND for codes outside the catalog
func (p *MockProvider) FetchAirportByCode(ctx context.Context, code string) (*entities.Airport, error) {
	normalized, err := requireCode("airport code", code)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, NewNetworkError(err, "request cancelled")
	}

	airport, ok := p.catalog.AirportByCode(normalized)
	if !ok {
		return nil, NewNotFoundError("airport %s not found", normalized)
	}
	return &airport, nil
}

// FetchFlightPosition simulates a flight drifting west of the base point
func (p *MockProvider) FetchFlightPosition(ctx context.Context, flightID string) (*entities.Telemetry, error) {
	if _, err := requireCode("flight id", flightID); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, NewNetworkError(err, "request cancelled")
	}

	tel := p.simulatePosition()
	return &tel, nil
}

// FetchConnectingFlights returns the catalog's connection list
func (p *MockProvider) FetchConnectingFlights(ctx context.Context, flightID string) ([]entities.Flight, error) {
	if _, err := requireCode("flight id", flightID); err != nil {
		return nil, err
	}

	flights := make([]entities.Flight, 0, len(p.catalog.Connections))
	for _, number := range p.catalog.Connections {
		flight, err := p.FetchFlightByNumber(ctx, number)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *flight)
	}
	return flights, nil
}

func (p *MockProvider) attachPosition(flight *entities.Flight) {
	if flight.Status.InProgress() {
		flight.ApplyTelemetry(p.simulatePosition())
	}
}

func (p *MockProvider) simulatePosition() entities.Telemetry {
	p.mu.Lock()
	defer p.mu.Unlock()

	base := p.catalog.Position
	return entities.Telemetry{
		Latitude:  entities.Some(base.Latitude + (p.rng.Float64()*0.1 - 0.05)),
		Longitude: entities.Some(base.Longitude + p.rng.Float64()*0.1),
		Altitude:  entities.Some(base.Altitude + (p.rng.Float64()*1000 - 500)),
		Speed:     entities.Some(base.Speed + (p.rng.Float64()*20 - 10)),
		Heading:   entities.Some(base.Heading + (p.rng.Float64()*10 - 5)),
	}
}
