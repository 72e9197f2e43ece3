package db

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rental-dashboard-backend/config"
	"rental-dashboard-backend/internal/model"
)

// Init opens the push-subscription database and runs migrations. SQLite
// serves the single-node default; a Postgres DSN switches drivers.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if isSQLiteDSN(cfg.DSN) {
		dialector = sqlite.Open(cfg.DSN)
	} else {
		dialector = postgres.Open(cfg.DSN)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Running database migrations...")
	if err := gormDB.AutoMigrate(&model.PushSubscription{}); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	return gormDB, nil
}

func isSQLiteDSN(dsn string) bool {
	return strings.HasSuffix(dsn, ".db") ||
		strings.Contains(dsn, ":memory:") ||
		strings.HasPrefix(dsn, "file:")
}
