// Package data persists per user dashboard preferences.
package data

import (
	"fmt"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// User holds the saved preferences of one dashboard visitor.
type User struct {
	gorm.Model
	Name     string
	Station  string
	Units    string
	LastSeen time.Time
	// MaxTide caps the daylight low tide report. Nil applies no cut.
	MaxTide *float64
}

// PostgresFromEnv connects using the conventional PG* environment
// variables and migrates the schema.
func PostgresFromEnv() (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=postgres password=%s dbname=tideline port=%s sslmode=disable TimeZone=America/Los_Angeles",
		os.Getenv("PGHOST"),
		os.Getenv("PGPASSWORD"),
		os.Getenv("PGPORT"))
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return db, nil
}
