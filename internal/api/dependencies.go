package api

import (
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"flightwatch/internal/common"
	"flightwatch/internal/config"
	"flightwatch/internal/db/repositories"
	"flightwatch/internal/metrics"
	"flightwatch/internal/providers"
	"flightwatch/internal/services"
)

type Repositories struct {
	Airports          *repositories.AirportRepository
	Notifications     *repositories.NotificationRepository
	NotificationStats *repositories.NotificationStatsRepository
}

type Services struct {
	Cache         common.CacheInterface
	Provider      providers.FlightDataProvider
	AirportLoader *common.AirportLoaderService
	Flights       *services.FlightsService
	Search        *services.SearchService
	Notifications *services.NotificationService
	Tracking      *services.TrackingService
}

// Dependencies is the application context handed to routes and workers
type Dependencies struct {
	Config   *config.Config
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
	SQL      *sqlx.DB
	// CachePinger is set when the cache is backed by an external store
	CachePinger Pinger
}

// InitDependencies builds every repository and service from the opened
// stores. The provider is wrapped with metrics instrumentation.
func InitDependencies(cfg *config.Config, gdb *gorm.DB, sqlxDB *sqlx.DB, cache common.CacheInterface, provider providers.FlightDataProvider, m *metrics.MetricsRegistry, notifier services.Notifier) *Dependencies {
	repos := &Repositories{
		Airports:          repositories.NewAirportRepository(gdb),
		Notifications:     repositories.NewNotificationRepository(gdb),
		NotificationStats: repositories.NewNotificationStatsRepository(sqlxDB),
	}

	instrumented := providers.NewInstrumentedProvider(provider, m)
	flights := services.NewFlightsService(instrumented, cache, repos.Airports, m, cfg.AirportTTL)

	svcs := &Services{
		Cache:         cache,
		Provider:      instrumented,
		AirportLoader: common.NewAirportLoaderService(gdb),
		Flights:       flights,
		Search:        services.NewSearchService(cache),
		Notifications: services.NewNotificationService(repos.Notifications, repos.NotificationStats, notifier, m),
		Tracking:      services.NewTrackingService(flights, instrumented, cfg.PollInterval, m),
	}

	deps := &Dependencies{
		Config:   cfg,
		Repo:     repos,
		Services: svcs,
		Metrics:  m,
		SQL:      sqlxDB,
	}
	if p, ok := cache.(Pinger); ok {
		deps.CachePinger = p
	}
	return deps
}
