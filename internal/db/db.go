package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nurpe/contracts-service/internal/config"
)

// New opens the configured store, tunes the pool and makes sure the schema
// exists.
func New(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	dialector, err := openDialector(cfg.DB)
	if err != nil {
		return nil, err
	}

	level := gormlogger.Warn
	if cfg.DB.LogQueries {
		level = gormlogger.Info
	}

	database, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(gormWriter{log: log.With().Str("component", "gorm").Logger()}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	if err := runMigrations(database, cfg.DB.EnforceForeignKeys); err != nil {
		return nil, err
	}

	log.Info().
		Str("driver", cfg.DB.Driver).
		Bool("foreign_keys", cfg.DB.EnforceForeignKeys).
		Msg("database ready")
	return database, nil
}

func openDialector(cfg config.DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.Open(sqliteDSN(cfg.DSN, cfg.EnforceForeignKeys)), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}

// sqliteDSN adds connection parameters so every pooled connection gets the
// same pragmas.
func sqliteDSN(dsn string, enforceForeignKeys bool) string {
	params := []string{"_journal_mode=WAL", "_busy_timeout=5000"}
	if enforceForeignKeys {
		params = append(params, "_foreign_keys=on")
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Info().Msgf(format, args...)
}
