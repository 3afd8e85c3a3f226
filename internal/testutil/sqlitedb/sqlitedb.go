// Package sqlitedb opens a migrated in-memory database for tests.
package sqlitedb

import (
	"testing"

	"loanreview-backend/internal/infrastructure/db"
	"loanreview-backend/internal/infrastructure/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open returns a fresh schema per call. The pool is pinned to one connection
// because every sqlite ":memory:" connection is its own database; concurrent
// transactions therefore run one after another.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: db.GormLogger(logging.Discard())})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return gdb
}
