package repositories

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"flightwatch/internal/db"
	"flightwatch/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// setupTestDB opens a private in-memory SQLite database shared by GORM and
// sqlx connections from the same pool.
func setupTestDB(t *testing.T) *gormlib.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	gdb, err := db.OpenORM(db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	sqlDB, _ := gdb.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return gdb
}

func strPtr(s string) *string { return &s }

func TestAirportRepository_UpsertAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewAirportRepository(setupTestDB(t))

	airports := []gorm.Airport{
		{Code: "JFK", Name: "John F. Kennedy International Airport", City: "New York", Country: "USA", Latitude: 40.6413, Longitude: -73.7781},
		{Code: "LAX", Name: "Los Angeles International Airport", City: "Los Angeles", Country: "USA", Latitude: 33.9416, Longitude: -118.4085},
	}
	if err := repo.Upsert(ctx, airports); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	airports[0].Name = "JFK International"
	if err := repo.Upsert(ctx, airports[:1]); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil || count != 2 {
		t.Fatalf("Expected 2 airports, got %d (err %v)", count, err)
	}

	got, err := repo.FindByCode(ctx, " jfk ")
	if err != nil {
		t.Fatalf("FindByCode failed: %v", err)
	}
	if got == nil || got.Name != "JFK International" {
		t.Fatalf("Expected updated JFK row, got %+v", got)
	}
	if e := got.ToEntity(); e.Latitude != 40.6413 {
		t.Errorf("Expected latitude 40.6413, got %v", e.Latitude)
	}

	missing, err := repo.FindByCode(ctx, "ZZZ")
	if err != nil || missing != nil {
		t.Errorf("Expected nil, nil for unknown code, got %+v, %v", missing, err)
	}
}

func TestNotificationRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	repo := NewNotificationRepository(gdb)

	sqlxDB, err := db.NewSQLX(gdb, db.DriverSQLite)
	if err != nil {
		t.Fatalf("NewSQLX failed: %v", err)
	}
	stats := NewNotificationStatsRepository(sqlxDB)

	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	rows := []gorm.Notification{
		{ID: "n1", Title: "Flight UA123 Update", Message: "older", Timestamp: base, FlightID: strPtr("UA123")},
		{ID: "n2", Title: "Flight UA123 Update", Message: "newer", Timestamp: base.Add(time.Minute), FlightID: strPtr("UA123")},
		{ID: "n3", Title: "Flight DL456 Update", Message: "other", Timestamp: base.Add(2 * time.Minute), FlightID: strPtr("DL456")},
	}
	for i := range rows {
		if err := repo.Create(ctx, &rows[i]); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 3 || list[0].ID != "n3" || list[2].ID != "n1" {
		t.Fatalf("Expected newest first, got %+v", list)
	}

	ok, err := repo.MarkRead(ctx, "n2")
	if err != nil || !ok {
		t.Fatalf("MarkRead(n2) = %v, %v", ok, err)
	}
	ok, err = repo.MarkRead(ctx, "missing")
	if err != nil || ok {
		t.Errorf("MarkRead(missing) = %v, %v; want false, nil", ok, err)
	}

	unread, err := stats.UnreadCount(ctx)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if unread != 2 {
		t.Errorf("Expected 2 unread, got %d", unread)
	}

	perFlight, err := stats.CountByFlight(ctx)
	if err != nil {
		t.Fatalf("CountByFlight failed: %v", err)
	}
	want := []FlightNotificationCount{
		{FlightID: "DL456", Total: 1, Unread: 1},
		{FlightID: "UA123", Total: 2, Unread: 1},
	}
	if len(perFlight) != len(want) {
		t.Fatalf("Expected %d flight rows, got %+v", len(want), perFlight)
	}
	for i := range want {
		if perFlight[i] != want[i] {
			t.Errorf("row %d: want %+v, got %+v", i, want[i], perFlight[i])
		}
	}

	removed, err := repo.DeleteAll(ctx)
	if err != nil || removed != 3 {
		t.Fatalf("DeleteAll = %d, %v; want 3, nil", removed, err)
	}
}
