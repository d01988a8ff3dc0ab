package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"flightwatch/internal/api"
	"flightwatch/internal/common"
	"flightwatch/internal/config"
	"flightwatch/internal/db"
	"flightwatch/internal/logging"
	"flightwatch/internal/metrics"
	"flightwatch/internal/providers"
	"flightwatch/internal/routes"
	"flightwatch/internal/services"
	"flightwatch/internal/workers"
)

// @title Flightwatch API
// @version 1.0
// @description Flight search and live position tracking backend.
// @host localhost:8080
// @BasePath /
func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Flightwatch starting up",
		"environment", cfg.AppEnv,
		"provider", cfg.Provider,
		"db_driver", cfg.DBDriver,
		"cache_backend", cfg.CacheBackend,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to DB with GORM, and share its pool with sqlx
	gdb, err := db.OpenORM(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logging.Fatal("Failed to connect to database", "error", err.Error())
	}
	if err := db.Migrate(gdb); err != nil {
		logging.Fatal("Failed to migrate database", "error", err.Error())
	}
	sqlxDB, err := db.NewSQLX(gdb, cfg.DBDriver)
	if err != nil {
		logging.Fatal("Failed to wrap database pool", "error", err.Error())
	}
	defer sqlxDB.Close()

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)

	// Cache backend, plus the Redis delivery queue when Redis is available
	var (
		cache common.CacheInterface
		queue *common.RedisQueueService
	)
	switch cfg.CacheBackend {
	case "redis":
		client := common.NewRedisClient(cfg.RedisAddr(), cfg.RedisPassword)
		redisCache := common.NewRedisCacheService(client, "flightwatch:")
		if err := redisCache.Ping(ctx); err != nil {
			logging.Fatal("Failed to connect to Redis", "addr", cfg.RedisAddr(), "error", err.Error())
		}
		cache = redisCache
		queue = common.NewRedisQueueService(client)
		logging.Info("Connected to Redis", "addr", cfg.RedisAddr())
	default:
		cache = common.NewCacheService(cfg.AirportTTL, 10*time.Minute)
	}
	defer cache.Close()

	catalog, err := providers.DefaultCatalog()
	if err != nil {
		logging.Fatal("Failed to parse airport catalog", "error", err.Error())
	}

	var provider providers.FlightDataProvider
	switch cfg.Provider {
	case "live":
		provider = providers.NewLiveAPIProvider(cfg.APIBaseURL, cfg.APIKey, cfg.APITimeout)
	default:
		provider = providers.NewMockProvider(catalog)
	}

	presenter := services.NewLogNotifier(cfg.Notifications)
	var notifier services.Notifier = presenter
	if queue != nil {
		notifier = &services.QueueNotifier{Queue: queue, Stream: common.NotificationStream}
	}

	deps := api.InitDependencies(cfg, gdb, sqlxDB, cache, provider, metricsReg, notifier)

	if total, err := deps.Services.AirportLoader.Seed(ctx, cfg.AirportsFile, catalog.Airports); err != nil {
		logging.Warn("Airport seeding failed", "file", cfg.AirportsFile, "error", err.Error())
	} else {
		logging.Info("Airport table ready", "total_airports", total)
	}

	workersCtx, cancelWorkers := context.WithCancel(ctx)
	bg := workers.InitWorkers(workersCtx, cfg, deps.Services.Tracking, deps.Services.Flights, deps.Repo.Airports, queue, presenter)

	upSince := time.Now()
	router := routes.RegisterRoutes(deps, upSince)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info("Server starting", "addr", cfg.HTTPAddr, "environment", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("HTTP server failed", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Warn("HTTP shutdown incomplete", "error", err.Error())
	}

	deps.Services.Tracking.Shutdown()
	cancelWorkers()
	bg.Wait()
	logging.Info("Flightwatch stopped")
}
