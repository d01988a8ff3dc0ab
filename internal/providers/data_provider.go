package providers

import (
	"context"
	"strings"

	"flightwatch/internal/models/entities"
)

// FlightDataProvider defines the interface for external flight data sources
type FlightDataProvider interface {
	// FetchFlightByNumber looks up a single flight. Fails with NOT_FOUND or NETWORK_ERROR.
	FetchFlightByNumber(ctx context.Context, flightNumber string) (*entities.Flight, error)

	// FetchFlightsByAirport lists flights departing from or arriving at an airport
	FetchFlightsByAirport(ctx context.Context, airportCode string) ([]entities.Flight, error)

	// FetchAirportByCode looks up static airport data. Unknown codes fail with NOT_FOUND.
	FetchAirportByCode(ctx context.Context, code string) (*entities.Airport, error)

	// FetchFlightPosition returns a live telemetry sample for an already resolved flight
	FetchFlightPosition(ctx context.Context, flightID string) (*entities.Telemetry, error)

	// FetchConnectingFlights lists onward flights from the given flight's arrival airport
	FetchConnectingFlights(ctx context.Context, flightID string) ([]entities.Flight, error)

	// GetProviderType returns the provider type identifier
	GetProviderType() string
}

// PositionFetcher is the narrow capability the position poller depends on
type PositionFetcher interface {
	FetchFlightPosition(ctx context.Context, flightID string) (*entities.Telemetry, error)
}

// NormalizeCode trims and upper-cases a flight number or airport code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func requireCode(kind, code string) (string, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return "", NewValidationError("%s cannot be empty", kind)
	}
	return normalized, nil
}
