package repository_test

import (
	"testing"

	"package_features/internal/config"
	"package_features/internal/repository/db"

	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(config.DBConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}
