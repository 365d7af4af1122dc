// Package dbtest opens throwaway SQLite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nurpe/contracts-service/internal/config"
	"github.com/nurpe/contracts-service/internal/db"
)

func Config(t testing.TB) *config.Config {
	t.Helper()
	return &config.Config{
		Environment: "test",
		DB: config.DBConfig{
			Driver:       config.DriverSQLite,
			DSN:          filepath.Join(t.TempDir(), "contracts.db"),
			MaxOpenConns: 1,
			MaxIdleConns: 1,
		},
	}
}

func New(t testing.TB) *gorm.DB {
	t.Helper()
	return Open(t, Config(t))
}

func Open(t testing.TB, cfg *config.Config) *gorm.DB {
	t.Helper()
	database, err := db.New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return database
}
