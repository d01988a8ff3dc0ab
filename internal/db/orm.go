package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"flightwatch/internal/logging"
	gormModels "flightwatch/internal/models/gorm"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// OpenORM connects GORM to the configured driver
func OpenORM(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite, "":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	logging.Info("Connected to database via GORM", "driver", driver)
	return db, nil
}

// Migrate creates or updates every table flightwatch owns
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&gormModels.Airport{}, &gormModels.Notification{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
