// Package testdb opens throwaway databases for tests.
package testdb

import (
	"testing"

	"crbklasemen/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table the service owns, in migration order.
func Models() []any {
	return []any{
		&models.Identity{},
		&models.RefreshToken{},
		&models.Admin{},
		&models.Klasemen{},
		&models.Hadiah{},
		&models.Event{},
	}
}

// Open returns an in-memory SQLite database with the schema migrated. The
// pool is pinned to one connection so every query sees the same memory db.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := gdb.AutoMigrate(Models()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}
