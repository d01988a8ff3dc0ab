package workers

import (
	"context"
	"time"

	"flightwatch/internal/db/repositories"
	"flightwatch/internal/logging"
	"flightwatch/internal/services"
)

// AirportCacheWarmer keeps every known airport in the cache so flight
// screens resolve their airports without a provider round trip
type AirportCacheWarmer struct {
	flights  *services.FlightsService
	airports *repositories.AirportRepository
}

func NewAirportCacheWarmer(flights *services.FlightsService, airports *repositories.AirportRepository) *AirportCacheWarmer {
	return &AirportCacheWarmer{
		flights:  flights,
		airports: airports,
	}
}

// Start warms immediately, then every interval until ctx is cancelled
func (w *AirportCacheWarmer) Start(ctx context.Context, interval time.Duration) {
	logging.Info("Airport cache warmer started", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.warm(ctx)

	for {
		select {
		case <-ctx.Done():
			logging.Info("Airport cache warmer shutting down")
			return
		case <-ticker.C:
			w.warm(ctx)
		}
	}
}

func (w *AirportCacheWarmer) warm(ctx context.Context) int {
	rows, err := w.airports.All(ctx)
	if err != nil {
		logging.Error("Failed to list airports for warm-up", "error", err.Error())
		return 0
	}

	codes := make([]string, 0, len(rows))
	for _, row := range rows {
		codes = append(codes, row.Code)
	}

	warmed := w.flights.WarmAirports(ctx, codes)
	logging.Debug("Airport cache warmed", "warmed", warmed, "known", len(codes))
	return warmed
}
