package db

import (
	"fmt"

	"gorm.io/gorm"
)

var sqliteStatements = []string{
	`CREATE TABLE IF NOT EXISTS contracts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		contract_name VARCHAR(100) NOT NULL,
		start_date VARCHAR(20) NOT NULL,
		end_date VARCHAR(20) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS points (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		contract_id INTEGER NOT NULL REFERENCES contracts(id),
		point VARCHAR(100) NOT NULL,
		value VARCHAR(100) NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_points_contract_id ON points (contract_id);`,
}

func postgresStatements(enforceForeignKeys bool) []string {
	contractRef := ""
	if enforceForeignKeys {
		contractRef = " REFERENCES contracts(id)"
	}
	return []string{
		`CREATE TABLE IF NOT EXISTS contracts (
			id SERIAL PRIMARY KEY,
			contract_name VARCHAR(100) NOT NULL,
			start_date VARCHAR(20) NOT NULL,
			end_date VARCHAR(20) NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS points (
			id SERIAL PRIMARY KEY,
			contract_id BIGINT NOT NULL` + contractRef + `,
			point VARCHAR(100) NOT NULL,
			value VARCHAR(100) NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_points_contract_id ON points (contract_id);`,
	}
}

// SQLite declares the reference but only enforces it when the connection
// was opened with foreign keys on.
func migrationStatements(dialect string, enforceForeignKeys bool) ([]string, error) {
	switch dialect {
	case "sqlite":
		return sqliteStatements, nil
	case "postgres":
		return postgresStatements(enforceForeignKeys), nil
	default:
		return nil, fmt.Errorf("no schema for dialect %q", dialect)
	}
}

func runMigrations(db *gorm.DB, enforceForeignKeys bool) error {
	statements, err := migrationStatements(db.Dialector.Name(), enforceForeignKeys)
	if err != nil {
		return err
	}
	for i, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
