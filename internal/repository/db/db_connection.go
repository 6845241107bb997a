package db

import (
	"database/sql"
	"fmt"

	"package_features/internal/config"
	"package_features/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"

// Open connects to the configured database and migrates the schema.
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case config.DriverSQLite, "":
		sqlDB, err := openSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		dialector = &sqlite.Dialector{DriverName: sqliteDriverName, Conn: sqlDB}
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
	return OpenDialector(dialector)
}

// OpenDialector opens gorm over an existing dialector and migrates the schema.
func OpenDialector(dialector gorm.Dialector) (*gorm.DB, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	if err := ensureSchema(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// openSQLite opens/creates a SQLite DB file through the pure-Go driver.
func openSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// SQLite is not great with many writers; one connection also keeps
	// ":memory:" databases alive between calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

func ensureSchema(db *gorm.DB) error {
	for i, m := range []any{
		&models.User{},
		&models.PackageFeature{},
		&models.AuditEvent{},
	} {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("apply schema model %d: %w", i+1, err)
		}
	}
	return nil
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
