// Package history indexes irreversible blocks and reward claims in SQLite
// for reporting.
package history

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	// InMemoryDSN creates an ephemeral in-memory database.
	InMemoryDSN = ":memory:"

	dbDirPermissions = 0o750
)

var (
	gormConfig = &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	schemaModels = []any{
		&ProducedBlock{},
		&RewardClaim{},
	}
)

// Open opens (or creates) the history database at path and migrates its
// schema. InMemoryDSN opens a throwaway database.
func Open(path string) (*gorm.DB, error) {
	dsn := path
	if path != InMemoryDSN {
		if err := os.MkdirAll(filepath.Dir(path), dbDirPermissions); err != nil {
			return nil, errors.Wrap(err, "failed to create history directory")
		}
		if !strings.Contains(dsn, "?") {
			dsn += "?_journal_mode=WAL&_busy_timeout=5000"
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open SQLite database")
	}
	if err := db.AutoMigrate(schemaModels...); err != nil {
		return nil, errors.Wrap(err, "failed to auto-migrate history schema")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get underlying sql.DB")
	}
	// a single writer connection keeps in-memory databases alive
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return db, nil
}

// Close closes the underlying connection.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to retrieve native sql.DB")
	}
	return errors.Wrap(sqlDB.Close(), "failed to close history database")
}
