package providers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightwatch/internal/models/entities"
)

var fixedNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newMock(t *testing.T) *MockProvider {
	t.Helper()
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	return NewMockProvider(catalog).WithClock(func() time.Time { return fixedNow }).WithSeed(42)
}

func TestDefaultCatalog(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)

	jfk, ok := catalog.AirportByCode("JFK")
	require.True(t, ok)
	assert.InDelta(t, 40.6413, jfk.Latitude, 1e-9)

	airline, ok := catalog.AirlineFor("UA123")
	require.True(t, ok)
	assert.Equal(t, "United Airlines", airline)
}

func TestParseCatalog_RejectsBadDuration(t *testing.T) {
	_, err := ParseCatalog([]byte("default_flight:\n  departs_in: soon\n  duration: 1h\n"))
	assert.Error(t, err)
}

func TestMockProvider_FetchFlightByNumber_Default(t *testing.T) {
	p := newMock(t)

	flight, err := p.FetchFlightByNumber(context.Background(), "ua123")
	require.NoError(t, err)

	assert.Equal(t, "UA123", flight.FlightNumber)
	assert.Equal(t, "United Airlines", flight.Airline)
	assert.Equal(t, "JFK", flight.DepartureAirport)
	assert.Equal(t, "LAX", flight.ArrivalAirport)
	assert.Equal(t, entities.FlightStatusActive, flight.Status)
	assert.Equal(t, fixedNow.Add(time.Hour), flight.DepartureTime)
	assert.Equal(t, fixedNow.Add(6*time.Hour), flight.ArrivalTime)
	require.NotNil(t, flight.Gate)
	assert.Equal(t, "B12", *flight.Gate)
	assert.True(t, flight.Telemetry.HasPosition(), "active flights carry a position")
}

func TestMockProvider_FetchFlightByNumber_Listed(t *testing.T) {
	p := newMock(t)

	flight, err := p.FetchFlightByNumber(context.Background(), "BA117")
	require.NoError(t, err)
	assert.Equal(t, entities.FlightStatusLanded, flight.Status)
	assert.False(t, flight.Telemetry.HasPosition(), "landed flights carry no telemetry")
}

func TestMockProvider_Errors(t *testing.T) {
	p := newMock(t)
	ctx := context.Background()

	_, err := p.FetchFlightByNumber(ctx, "")
	assert.True(t, IsValidation(err))

	_, err = p.FetchFlightByNumber(ctx, "ZZ100")
	assert.True(t, IsNotFound(err))

	_, err = p.FetchAirportByCode(ctx, "XYZ")
	assert.True(t, IsNotFound(err))

	_, err = p.FetchFlightsByAirport(ctx, "XYZ")
	assert.True(t, IsNotFound(err))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = p.FetchFlightPosition(cancelled, "UA123")
	assert.True(t, IsNetworkError(err))
}

func TestMockProvider_FetchFlightPosition_WithinJitter(t *testing.T) {
	p := newMock(t)
	base := p.Catalog().Position

	for i := 0; i < 50; i++ {
		tel, err := p.FetchFlightPosition(context.Background(), "UA123")
		require.NoError(t, err)

		assert.InDelta(t, base.Latitude, tel.Latitude.Value, 0.05)
		assert.GreaterOrEqual(t, tel.Longitude.Value, base.Longitude)
		assert.Less(t, tel.Longitude.Value, base.Longitude+0.1)
		assert.InDelta(t, base.Altitude, tel.Altitude.Value, 500)
		assert.InDelta(t, base.Speed, tel.Speed.Value, 10)
		assert.InDelta(t, base.Heading, tel.Heading.Value, 5)
	}
}

func TestMockProvider_AirportBoard(t *testing.T) {
	p := newMock(t)

	flights, err := p.FetchFlightsByAirport(context.Background(), "SFO")
	require.NoError(t, err)
	require.Len(t, flights, 2)

	assert.Equal(t, "SFO", flights[0].DepartureAirport)
	assert.Equal(t, "SFO", flights[1].ArrivalAirport)
	assert.Equal(t, "Delta Airlines", flights[1].Airline)
}

func TestMockProvider_FetchConnectingFlights(t *testing.T) {
	p := newMock(t)

	flights, err := p.FetchConnectingFlights(context.Background(), "UA123")
	require.NoError(t, err)
	require.Len(t, flights, 2)
	assert.Equal(t, "UA789", flights[0].FlightNumber)
	assert.Equal(t, "LAX", flights[0].DepartureAirport)
	assert.Equal(t, entities.FlightStatusScheduled, flights[1].Status)
}
