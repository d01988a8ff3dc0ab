package workers

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"flightwatch/internal/common"
	"flightwatch/internal/db"
	"flightwatch/internal/db/repositories"
	"flightwatch/internal/providers"
	"flightwatch/internal/services"
)

func setupTestDB(t *testing.T) *gorm.DB {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, _ := gdb.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return gdb
}

func newFlights(t *testing.T, airports *repositories.AirportRepository) (*services.FlightsService, *providers.MockProvider) {
	catalog, err := providers.DefaultCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	p := providers.NewMockProvider(catalog)
	return services.NewFlightsService(p, common.NewCacheService(time.Hour, time.Hour), airports, nil, time.Hour), p
}

func TestAirportCacheWarmer_WarmsSeededAirports(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	repo := repositories.NewAirportRepository(gdb)

	flights, p := newFlights(t, repo)
	if _, err := common.NewAirportLoaderService(gdb).Load(ctx, p.Catalog().Airports); err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := NewAirportCacheWarmer(flights, repo)
	if got := w.warm(ctx); got != len(p.Catalog().Airports) {
		t.Errorf("Expected %d airports warmed, got %d", len(p.Catalog().Airports), got)
	}

	if _, ok := flights.Cache.Get("AIRPORT_LHR"); !ok {
		t.Error("Expected LHR in cache after warm-up")
	}
}

func TestSessionReaper_ClosesIdleSessions(t *testing.T) {
	flights, p := newFlights(t, nil)
	tracking := services.NewTrackingService(flights, p, time.Hour, nil)
	defer tracking.Shutdown()

	if _, err := tracking.StartSession(context.Background(), "UA123"); err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	if ids := NewSessionReaper(tracking, time.Hour).reap(); len(ids) != 0 {
		t.Errorf("Expected no sessions reaped, got %v", ids)
	}
	if ids := NewSessionReaper(tracking, -time.Second).reap(); len(ids) != 1 {
		t.Errorf("Expected 1 session reaped, got %v", ids)
	}
	if n := tracking.Sessions.Len(); n != 0 {
		t.Errorf("Expected no open sessions, got %d", n)
	}
}

func TestSessionReaper_StopsOnCancel(t *testing.T) {
	flights, p := newFlights(t, nil)
	tracking := services.NewTrackingService(flights, p, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewSessionReaper(tracking, time.Minute).Start(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reaper did not stop after cancel")
	}
}
