package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleFlight() Flight {
	return Flight{
		FlightNumber:     "UA123",
		Airline:          "United Airlines",
		DepartureAirport: "JFK",
		ArrivalAirport:   "LAX",
		DepartureTime:    time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		ArrivalTime:      time.Date(2024, 1, 1, 16, 0, 0, 0, time.UTC),
		Status:           FlightStatusActive,
		Gate:             strPtr("B12"),
		Terminal:         strPtr("T2"),
		Telemetry: Telemetry{
			Latitude:  Some(40.0),
			Longitude: Some(-74.0),
			Altitude:  Some(35000.0),
		},
	}
}

func TestApplyTelemetry_OverwritesOnlyPresentFields(t *testing.T) {
	f := sampleFlight()

	f.ApplyTelemetry(Telemetry{
		Latitude: Some(41.5),
		Heading:  Some(270.0),
	})

	assert.Equal(t, 41.5, f.Telemetry.Latitude.Value)
	assert.Equal(t, -74.0, f.Telemetry.Longitude.Value, "longitude absent from update must be kept")
	assert.Equal(t, 35000.0, f.Telemetry.Altitude.Value)
	assert.False(t, f.Telemetry.Speed.Valid)
	assert.Equal(t, 270.0, f.Telemetry.Heading.Value)

	require.NotNil(t, f.Gate)
	assert.Equal(t, "B12", *f.Gate)
	assert.Equal(t, "T2", *f.Terminal)
	assert.Equal(t, FlightStatusActive, f.Status)
}

func TestApplyTelemetry_Idempotent(t *testing.T) {
	update := Telemetry{
		Latitude:  Some(39.9),
		Longitude: Some(-80.1),
		Altitude:  Some(0.0),
		Speed:     Some(545.0),
		Heading:   Some(268.0),
	}

	once := sampleFlight()
	once.ApplyTelemetry(update)

	twice := sampleFlight()
	twice.ApplyTelemetry(update)
	twice.ApplyTelemetry(update)

	assert.Equal(t, once, twice)
	assert.True(t, once.Telemetry.Altitude.Valid, "a zero altitude is still a value")
}

func TestOptional_JSON(t *testing.T) {
	tel := Telemetry{Latitude: Some(12.5)}
	data, err := json.Marshal(tel)
	require.NoError(t, err)
	assert.JSONEq(t, `{"latitude":12.5,"longitude":null,"altitude":null,"speed":null,"heading":null}`, string(data))

	var decoded Telemetry
	require.NoError(t, json.Unmarshal([]byte(`{"latitude":1.25,"heading":0}`), &decoded))
	assert.Equal(t, Some(1.25), decoded.Latitude)
	assert.Equal(t, Some(0.0), decoded.Heading)
	assert.False(t, decoded.Longitude.Valid)
}

func TestFlightStatus_InProgress(t *testing.T) {
	for _, s := range AllFlightStatuses {
		assert.Equal(t, s == FlightStatusActive, s.InProgress(), string(s))
	}
}
