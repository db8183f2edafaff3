package config

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB connects to the database selected by DB_DRIVER.
func OpenDB(s *Settings) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch s.DBDriver {
	case "mysql":
		dialector = mysql.Open(s.DBDSN)
	case "postgres":
		dialector = postgres.Open(s.DBDSN)
	case "sqlite", "":
		dialector = sqlite.Open(SQLiteDSN(s.DBDSN))
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", s.DBDriver)
	}

	level := logger.Warn
	if s.Env != "production" {
		level = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", s.DBDriver, err)
	}

	Logger.Info("Database connected", zap.String("driver", s.DBDriver))
	return db, nil
}

// SQLiteDSN turns foreign key enforcement on, which sqlite leaves off per connection.
func SQLiteDSN(path string) string {
	return path + "?_foreign_keys=on"
}

// CloseDB closes the pool behind db.
func CloseDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		Logger.Error("Error getting raw DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		Logger.Error("Error closing database connection", zap.Error(err))
	}
}
