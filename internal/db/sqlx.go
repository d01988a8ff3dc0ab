package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// sqlxDriverName maps our driver names onto the names sqlx uses to pick a
// bind variable style. GORM's postgres dialector runs on pgx.
func sqlxDriverName(driver string) string {
	if driver == DriverPostgres {
		return "pgx"
	}
	return "sqlite3"
}

// NewSQLX exposes GORM's connection pool to hand-written queries
func NewSQLX(gdb *gorm.DB, driver string) (*sqlx.DB, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap gorm pool: %w", err)
	}
	return sqlx.NewDb(sqlDB, sqlxDriverName(driver)), nil
}
