package projector

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightwatch/internal/models/entities"
)

var (
	jfk = entities.Airport{Code: "JFK", Latitude: 40.6413, Longitude: -73.7781}
	lax = entities.Airport{Code: "LAX", Latitude: 33.9416, Longitude: -118.4085}
)

func TestComputeRouteFraming_JFKToLAX(t *testing.T) {
	framing, ok := ComputeRouteFraming(&jfk, &lax)
	require.True(t, ok)

	assert.InDelta(t, 37.29, framing.Latitude, 0.01)
	assert.InDelta(t, -96.09, framing.Longitude, 0.01)
	assert.InDelta(t, 10.05, framing.LatitudeDelta, 0.01)
	assert.InDelta(t, 66.95, framing.LongitudeDelta, 0.01)
}

func TestComputeRouteFraming_ShortHopUsesFloor(t *testing.T) {
	ewr := entities.Airport{Code: "EWR", Latitude: 40.6895, Longitude: -74.1745}

	framing, ok := ComputeRouteFraming(&jfk, &ewr)
	require.True(t, ok)
	assert.Equal(t, MinFramingDelta, framing.LatitudeDelta)
	assert.Equal(t, MinFramingDelta, framing.LongitudeDelta)
}

func TestComputeRouteFraming_MissingAirport(t *testing.T) {
	_, ok := ComputeRouteFraming(&jfk, nil)
	assert.False(t, ok)
	_, ok = ComputeRouteFraming(nil, &lax)
	assert.False(t, ok)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{125, "2h 5m"},
		{45, "45m"},
		{0, "0m"},
		{60, "1h 0m"},
		{360, "6h 0m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.minutes).String(), "minutes=%d", tt.minutes)
	}

	d := FormatDuration(125)
	assert.Equal(t, 2, d.Hours)
	assert.Equal(t, 5, d.Minutes)
}

func TestMinutesBetween(t *testing.T) {
	a, _ := time.Parse(time.RFC3339, "2024-01-01T10:00:00Z")
	b, _ := time.Parse(time.RFC3339, "2024-01-01T16:00:00Z")

	assert.Equal(t, 360, MinutesBetween(a, b))
	assert.Equal(t, 360, MinutesBetween(b, a))
	assert.Equal(t, 0, MinutesBetween(a, a.Add(59*time.Second)))
	assert.Equal(t, 1, MinutesBetween(a, a.Add(119*time.Second)))
}

func TestClassifyStatus_Total(t *testing.T) {
	want := map[entities.FlightStatus]StatusCategory{
		entities.FlightStatusActive:       StatusCategorySuccess,
		entities.FlightStatusLanded:       StatusCategoryInfo,
		entities.FlightStatusDelayed:      StatusCategoryWarning,
		entities.FlightStatusCancelled:    StatusCategoryError,
		entities.FlightStatusDiverted:     StatusCategoryError,
		entities.FlightStatusScheduled:    StatusCategoryNeutral,
		entities.FlightStatus("BOARDING"): StatusCategoryNeutral,
	}
	for _, s := range entities.AllFlightStatuses {
		_, ok := want[s]
		require.True(t, ok, "status %s missing from expectations", s)
	}
	for status, category := range want {
		assert.Equal(t, category, ClassifyStatus(status), string(status))
	}
}

func TestIsDelayed_Boundary(t *testing.T) {
	scheduled := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	assert.False(t, IsDelayed(scheduled, scheduled.Add(15*time.Minute)))
	assert.True(t, IsDelayed(scheduled, scheduled.Add(15*time.Minute+time.Second)))
	assert.False(t, IsDelayed(scheduled, scheduled.Add(-30*time.Minute)))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		offset time.Duration
		want   string
	}{
		{-30 * time.Minute, "30m ago"},
		{-59 * time.Minute, "59m ago"},
		{-60 * time.Minute, "1h ago"},
		{-5 * time.Hour, "5h ago"},
		{-24 * time.Hour, "1d ago"},
		{-72 * time.Hour, "3d ago"},
		{0, "in 0m"},
		{45 * time.Minute, "in 45m"},
		{2 * time.Hour, "in 2h"},
		{49 * time.Hour, "in 2d"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RelativeTime(now.Add(tt.offset), now), "offset=%s", tt.offset)
	}
}

func TestDistanceKm(t *testing.T) {
	d := DistanceKm(jfk.Latitude, jfk.Longitude, lax.Latitude, lax.Longitude)
	assert.InDelta(t, 3974.3, d, 0.5)
	assert.InDelta(t, 0, DistanceKm(10, 10, 10, 10), 1e-9)

	// one degree of arc on the mean-radius sphere
	assert.InDelta(t, EarthRadiusKm*math.Pi/180, DistanceKm(0, 0, 0, 1), 1e-6)
}

func TestFormatUnits(t *testing.T) {
	assert.Equal(t, "35,000 ft", FormatAltitude(35000))
	assert.Equal(t, "550 kts", FormatSpeed(549.6))
	assert.Equal(t, "270°", FormatHeading(270.2))
	assert.Equal(t, "355°", FormatHeading(-5))
}

func TestBuildFlightView(t *testing.T) {
	dep := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	flight := entities.Flight{
		FlightNumber:  "UA123",
		DepartureTime: dep,
		ArrivalTime:   dep.Add(6 * time.Hour),
		Status:        entities.FlightStatusActive,
		Delay:         entities.Some(20),
		Telemetry: entities.Telemetry{
			Latitude:  entities.Some(39.0),
			Longitude: entities.Some(-90.0),
			Altitude:  entities.Some(35000.0),
		},
	}

	view := BuildFlightView(flight, &jfk, &lax, dep.Add(-2*time.Hour))

	assert.Equal(t, StatusCategorySuccess, view.StatusCategory)
	assert.Equal(t, "6h 0m", view.Duration)
	assert.Equal(t, "in 2h", view.DepartsRelative)
	assert.Equal(t, "10:00", view.DepartureClock)
	assert.Equal(t, "Mon, Jan 1", view.DepartureDate)
	assert.True(t, view.Delayed)
	require.NotNil(t, view.Framing)
	require.NotNil(t, view.Progress)
	assert.Greater(t, view.Progress.Percent, 0.0)
	assert.Less(t, view.Progress.Percent, 100.0)
	require.NotNil(t, view.Telemetry)
	assert.Equal(t, "35,000 ft", view.Telemetry.Altitude)
	assert.Empty(t, view.Telemetry.Speed)

	flight.Status = entities.FlightStatusLanded
	view = BuildFlightView(flight, &jfk, nil, dep)
	assert.Nil(t, view.Framing)
	assert.Nil(t, view.Progress)
	assert.Nil(t, view.Telemetry)
}
