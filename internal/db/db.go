// Package db owns the embedded store lifecycle: opening the database file
// and the forward-only, additive schema migration applied at every start.
package db

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"atelierledger/internal/models"
)

// Open opens (or creates) the embedded database. WAL keeps readers from
// blocking the single writer; foreign keys must be on for the sale → item
// cascade to hold.
func Open(path string) (*gorm.DB, error) {
	dsn := path + "?_foreign_keys=on&_journal_mode=WAL"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}
	return conn, nil
}

// lateColumns were introduced after the first release. Each addition is
// attempted independently: databases created today already have them via
// AutoMigrate, while old files pick them up here with a safe default and
// no rewrite of existing rows.
var lateColumns = []struct {
	table, column, ddl string
}{
	{"sales", "status", `ALTER TABLE sales ADD COLUMN status TEXT NOT NULL DEFAULT 'feita'`},
	{"sales", "client", `ALTER TABLE sales ADD COLUMN client TEXT`},
}

// EnsureSchema creates missing tables and applies the additive column
// migrations. Idempotent; safe to run on every start; never destructive
// (no drops, no type changes). Table creation failure is fatal, column
// additions are not: a duplicate column is expected and benign, any other
// ALTER failure is logged and the feature degrades to its default.
func EnsureSchema(conn *gorm.DB) error {
	for _, m := range []interface{}{
		&models.Sale{},
		&models.SaleItem{},
		&models.Client{},
		&models.Purchase{},
		&models.Goal{},
		&models.StoreProfile{},
	} {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}

	for _, c := range lateColumns {
		if err := conn.Exec(c.ddl).Error; err != nil {
			if isDuplicateColumn(err) {
				continue
			}
			log.Warn().Err(err).
				Str("table", c.table).
				Str("column", c.column).
				Msg("additive migration skipped; callers fall back to defaults")
		}
	}

	// sanity check: the tables every operation depends on must exist
	for _, table := range []string{"sales", "sale_items", "clients", "purchases", "goals", "store_profiles"} {
		if !conn.Migrator().HasTable(table) {
			return fmt.Errorf("missing table after migration: %s", table)
		}
	}
	return nil
}

func isDuplicateColumn(err error) bool {
	return strings.Contains(err.Error(), "duplicate column name")
}
