// Package projector derives display-ready values from flight and airport
// records. Every function here is pure.
package projector

import (
	"math"

	geo "github.com/paulmach/go.geo"

	"flightwatch/internal/models/entities"
)

const (
	// FramingPadding widens the route span so both endpoints sit inside the region.
	FramingPadding = 1.5
	// MinFramingDelta keeps short hops from producing an overly tight region.
	MinFramingDelta = 5.0
	// AirportFramingDelta is the fixed span used when centring on a single airport.
	AirportFramingDelta = 0.5
	// EarthRadiusKm is the mean radius distances are reported against.
	EarthRadiusKm = 6371.0
)

// RouteFraming is a map region centred on a route.
type RouteFraming struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LatitudeDelta  float64 `json:"latitude_delta"`
	LongitudeDelta float64 `json:"longitude_delta"`
}

// ComputeRouteFraming centres a region between the two airports. It returns
// false when either airport is missing.
func ComputeRouteFraming(departure, arrival *entities.Airport) (RouteFraming, bool) {
	if departure == nil || arrival == nil {
		return RouteFraming{}, false
	}

	latDelta := math.Abs(departure.Latitude-arrival.Latitude) * FramingPadding
	lonDelta := math.Abs(departure.Longitude-arrival.Longitude) * FramingPadding

	return RouteFraming{
		Latitude:       (departure.Latitude + arrival.Latitude) / 2,
		Longitude:      (departure.Longitude + arrival.Longitude) / 2,
		LatitudeDelta:  math.Max(latDelta, MinFramingDelta),
		LongitudeDelta: math.Max(lonDelta, MinFramingDelta),
	}, true
}

// AirportFraming centres a region on a single airport.
func AirportFraming(airport entities.Airport) RouteFraming {
	return RouteFraming{
		Latitude:       airport.Latitude,
		Longitude:      airport.Longitude,
		LatitudeDelta:  AirportFramingDelta,
		LongitudeDelta: AirportFramingDelta,
	}
}

// DistanceKm is the great-circle distance between two coordinates in kilometres.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	from := geo.NewPoint(lon1, lat1)
	to := geo.NewPoint(lon2, lat2)
	// go.geo measures on the equatorial radius; rescale to the mean radius
	return from.GeoDistanceFrom(to, true) / geo.EarthRadius * EarthRadiusKm
}

// RouteProgress describes how far along its route a tracked flight is.
type RouteProgress struct {
	TotalKm     float64 `json:"total_km"`
	FlownKm     float64 `json:"flown_km"`
	RemainingKm float64 `json:"remaining_km"`
	Percent     float64 `json:"percent"`
}

// ComputeRouteProgress uses the flight's last known position. It returns false
// without both airports or without a position fix.
func ComputeRouteProgress(flight entities.Flight, departure, arrival *entities.Airport) (RouteProgress, bool) {
	if departure == nil || arrival == nil || !flight.Telemetry.HasPosition() {
		return RouteProgress{}, false
	}
	lat := flight.Telemetry.Latitude.Value
	lon := flight.Telemetry.Longitude.Value

	total := DistanceKm(departure.Latitude, departure.Longitude, arrival.Latitude, arrival.Longitude)
	flown := DistanceKm(departure.Latitude, departure.Longitude, lat, lon)
	remaining := DistanceKm(lat, lon, arrival.Latitude, arrival.Longitude)

	percent := 0.0
	if total > 0 {
		percent = math.Min(100, flown/total*100)
	}
	return RouteProgress{
		TotalKm:     total,
		FlownKm:     flown,
		RemainingKm: remaining,
		Percent:     percent,
	}, true
}
