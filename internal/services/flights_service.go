package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"flightwatch/internal/common"
	"flightwatch/internal/constants"
	"flightwatch/internal/db/repositories"
	"flightwatch/internal/logging"
	"flightwatch/internal/metrics"
	"flightwatch/internal/models/dtos"
	"flightwatch/internal/models/entities"
	"flightwatch/internal/projector"
	"flightwatch/internal/providers"
)

type FlightsService struct {
	Provider   providers.FlightDataProvider
	Cache      common.CacheInterface
	Airports   *repositories.AirportRepository
	Metrics    *metrics.MetricsRegistry
	AirportTTL time.Duration
	Now        func() time.Time
}

// NewFlightsService wires the flight lookups. airports may be nil, in which
// case airport lookups go straight from cache to the provider.
func NewFlightsService(provider providers.FlightDataProvider, cache common.CacheInterface, airports *repositories.AirportRepository, m *metrics.MetricsRegistry, airportTTL time.Duration) *FlightsService {
	return &FlightsService{
		Provider:   provider,
		Cache:      cache,
		Airports:   airports,
		Metrics:    m,
		AirportTTL: airportTTL,
		Now:        time.Now,
	}
}

// LoadFlight fetches a single flight by number
func (svc *FlightsService) LoadFlight(ctx context.Context, flightNumber string) (*entities.Flight, error) {
	return svc.Provider.FetchFlightByNumber(ctx, flightNumber)
}

// GetAirport resolves an airport through cache, then the airports table,
// then the provider. Unknown codes fail with NOT_FOUND.
func (svc *FlightsService) GetAirport(ctx context.Context, code string) (*entities.Airport, error) {
	code = providers.NormalizeCode(code)
	if code == "" {
		return nil, providers.NewValidationError("airport code cannot be empty")
	}
	key := string(constants.CachePrefixAirport) + code

	loaded := false
	val, err := svc.Cache.GetOrSet(key, svc.AirportTTL, func() (any, error) {
		loaded = true
		return svc.loadAirport(ctx, code)
	})
	svc.Metrics.ObserveCache(string(constants.CachePrefixAirport), err == nil && !loaded)
	if err != nil {
		return nil, err
	}

	airport, ok := common.DecodeCached[entities.Airport](val)
	if !ok {
		logging.Warn("Discarding unreadable cached airport", "code", code)
		svc.Cache.Delete(key)
		if airport, err = svc.loadAirport(ctx, code); err != nil {
			return nil, err
		}
		svc.Cache.Set(key, airport, svc.AirportTTL)
	}
	return &airport, nil
}

// loadAirport reads the airports table first and falls back to the provider
func (svc *FlightsService) loadAirport(ctx context.Context, code string) (entities.Airport, error) {
	if svc.Airports != nil {
		row, err := svc.Airports.FindByCode(ctx, code)
		if err != nil {
			logging.Warn("Airport table lookup failed", "code", code, "error", err.Error())
		} else if row != nil {
			return row.ToEntity(), nil
		}
	}

	airport, err := svc.Provider.FetchAirportByCode(ctx, code)
	if err != nil {
		return entities.Airport{}, err
	}
	return *airport, nil
}

// optionalAirport resolves an airport for display. An unknown code yields
// nil so the screen renders without it; other failures propagate.
func (svc *FlightsService) optionalAirport(ctx context.Context, code string) (*entities.Airport, error) {
	airport, err := svc.GetAirport(ctx, code)
	if err != nil {
		if providers.IsNotFound(err) || providers.IsValidation(err) {
			logging.Warn("Airport unavailable, omitting from view", "code", code, "error", err.Error())
			return nil, nil
		}
		return nil, err
	}
	return airport, nil
}

// ResolveRoute loads both airports of a flight concurrently
func (svc *FlightsService) ResolveRoute(ctx context.Context, flight entities.Flight) (*entities.Airport, *entities.Airport, error) {
	var dep, arr *entities.Airport

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dep, err = svc.optionalAirport(gctx, flight.DepartureAirport)
		return err
	})
	g.Go(func() error {
		var err error
		arr, err = svc.optionalAirport(gctx, flight.ArrivalAirport)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return dep, arr, nil
}

// LoadFlightDetails builds the flight screen: the flight, its airports,
// onward connections and the derived view
func (svc *FlightsService) LoadFlightDetails(ctx context.Context, flightNumber string) (*dtos.FlightDetailsResponse, error) {
	flight, err := svc.LoadFlight(ctx, flightNumber)
	if err != nil {
		return nil, err
	}

	var (
		dep, arr    *entities.Airport
		connections []entities.Flight
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dep, arr, err = svc.ResolveRoute(gctx, *flight)
		return err
	})
	g.Go(func() error {
		list, err := svc.Provider.FetchConnectingFlights(gctx, flight.FlightNumber)
		if err != nil {
			// connections are secondary; the screen still renders without them
			logging.Warn("Connecting flights unavailable", "flight_id", flight.FlightNumber, "error", err.Error())
			return nil
		}
		connections = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dtos.FlightDetailsResponse{
		Flight:            *flight,
		DepartureAirport:  dep,
		ArrivalAirport:    arr,
		ConnectingFlights: dtos.NewFlightSummaries(connections),
		View:              projector.BuildFlightView(*flight, dep, arr, svc.Now()),
	}, nil
}

// GetConnections lists onward flights for a flight
func (svc *FlightsService) GetConnections(ctx context.Context, flightNumber string) ([]dtos.FlightSummary, error) {
	flights, err := svc.Provider.FetchConnectingFlights(ctx, flightNumber)
	if err != nil {
		return nil, err
	}
	return dtos.NewFlightSummaries(flights), nil
}

// LoadAirportBoard lists flights departing from or arriving at code,
// framed on the airport itself
func (svc *FlightsService) LoadAirportBoard(ctx context.Context, code string) (*dtos.AirportBoardResponse, error) {
	var (
		airport *entities.Airport
		flights []entities.Flight
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		airport, err = svc.GetAirport(gctx, code)
		return err
	})
	g.Go(func() error {
		var err error
		flights, err = svc.Provider.FetchFlightsByAirport(gctx, code)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dtos.AirportBoardResponse{
		Airport: *airport,
		Framing: projector.AirportFraming(*airport),
		Flights: dtos.NewFlightSummaries(flights),
	}, nil
}

// WarmAirports preloads airports into the cache and returns how many were
// stored. Unknown codes are skipped.
func (svc *FlightsService) WarmAirports(ctx context.Context, codes []string) int {
	warmed := 0
	for _, code := range codes {
		if ctx.Err() != nil {
			break
		}
		if _, err := svc.GetAirport(ctx, code); err != nil {
			logging.Warn("Airport warm-up failed", "code", code, "error", err.Error())
			continue
		}
		warmed++
	}
	return warmed
}
