// Package testutils builds throwaway stores for service and handler tests.
package testutils

import (
	"io"
	"log/slog"
	"testing"

	infrarepo "github.com/amirasaad/fintrack/infra/repository"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with every table
// migrated. The pool is capped at one connection so that concurrent
// callers serialise instead of hitting "database is locked".
func NewTestDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := infrarepo.AutoMigrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	tb.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// NewTestUoW returns a unit of work over a fresh test database.
func NewTestUoW(tb testing.TB) (*infrarepo.UoW, *gorm.DB) {
	tb.Helper()
	db := NewTestDB(tb)
	return infrarepo.NewUoW(db), db
}

// DiscardLogger drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
