package common

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	gormlib "gorm.io/gorm"

	"flightwatch/internal/db/repositories"
	"flightwatch/internal/logging"
	"flightwatch/internal/models/entities"
	"flightwatch/internal/models/gorm"
)

// AirportLoaderService seeds the airports table with reference data
type AirportLoaderService struct {
	repo *repositories.AirportRepository
}

// NewAirportLoaderService creates a new airport loader service
func NewAirportLoaderService(db *gormlib.DB) *AirportLoaderService {
	return &AirportLoaderService{
		repo: repositories.NewAirportRepository(db),
	}
}

// LoadFromYAML reads an airport list and upserts it.
// Expected format: either a bare list or an object with an "airports" key.
func (s *AirportLoaderService) LoadFromYAML(ctx context.Context, reader io.Reader) (int, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return 0, fmt.Errorf("failed to read airport data: %w", err)
	}

	var doc struct {
		Airports []entities.Airport `yaml:"airports"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil || len(doc.Airports) == 0 {
		var list []entities.Airport
		if err := yaml.Unmarshal(data, &list); err != nil {
			return 0, fmt.Errorf("failed to decode YAML: %w", err)
		}
		doc.Airports = list
	}

	return s.Load(ctx, doc.Airports)
}

// Seed loads airports from the YAML file at path, or from fallback when path
// is empty, and reports the resulting table size.
func (s *AirportLoaderService) Seed(ctx context.Context, path string, fallback []entities.Airport) (int64, error) {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return 0, fmt.Errorf("failed to open airport file: %w", err)
		}
		defer f.Close()
		if _, err := s.LoadFromYAML(ctx, f); err != nil {
			return 0, err
		}
	} else if _, err := s.Load(ctx, fallback); err != nil {
		return 0, err
	}

	stats, err := s.GetStats(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count airports: %w", err)
	}
	return stats.TotalAirports, nil
}

// Load upserts airports, skipping records without a code or name
func (s *AirportLoaderService) Load(ctx context.Context, airports []entities.Airport) (int, error) {
	rows := make([]gorm.Airport, 0, len(airports))
	for _, a := range airports {
		a.Code = strings.ToUpper(strings.TrimSpace(a.Code))
		a.Name = strings.TrimSpace(a.Name)
		if a.Code == "" || a.Name == "" {
			continue
		}
		rows = append(rows, gorm.AirportFromEntity(a))
	}

	if len(rows) == 0 {
		return 0, fmt.Errorf("no valid airports found after parsing")
	}

	if err := s.repo.Upsert(ctx, rows); err != nil {
		return 0, fmt.Errorf("failed to insert airports: %w", err)
	}

	logging.Info("Airports seeded", "count", len(rows))
	return len(rows), nil
}

// AirportStats summarises the airports table
type AirportStats struct {
	TotalAirports int64 `json:"total_airports"`
}

// GetStats returns statistics about loaded airports
func (s *AirportLoaderService) GetStats(ctx context.Context) (*AirportStats, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &AirportStats{TotalAirports: count}, nil
}
