package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// EnsureDatabase creates the configured PostgreSQL database if it doesn't exist.
// It connects to the default 'postgres' database to create it. SQLite files
// are created on first open, so this is a no-op for SQLite.
func EnsureDatabase(ctx context.Context, cfg Config, log *slog.Logger) error {
	if !cfg.IsPostgres() {
		return nil
	}
	if cfg.DBName == "" {
		return fmt.Errorf("no database name provided")
	}

	admin := cfg
	admin.DBName = "postgres"

	db, err := New(admin, log)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres database: %w", err)
	}
	defer db.Close()

	return createDatabaseIfNotExists(ctx, db, cfg.DBName)
}

// createDatabaseIfNotExists creates a database if it doesn't already exist
func createDatabaseIfNotExists(ctx context.Context, db *DB, dbName string) error {
	var exists bool
	err := db.gorm.WithContext(ctx).
		Raw(`SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = ?)`, dbName).
		Scan(&exists).Error
	if err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}

	if exists {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// CREATE DATABASE does not accept bind parameters.
	if err := db.gorm.WithContext(ctx).Exec(`CREATE DATABASE ` + quoteIdent(dbName)).Error; err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
