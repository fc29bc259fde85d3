package database

import (
	"fmt"
	"time"

	"github.com/glowandgrind/site-api/config"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds database connection and behavior settings
type Config struct {
	Driver string

	// SQLite
	Path string

	// PostgreSQL
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	// Connection pooling
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int

	// Migration control
	AutoMigrate bool

	// Query logging
	EnableLogging        bool
	SlowQueryThresholdMs int
}

// IsPostgres reports whether the config targets PostgreSQL.
func (c Config) IsPostgres() bool {
	return c.Driver == DriverPostgres
}

// DSN returns a PostgreSQL connection string
func (c Config) DSN() string {
	return buildDSN(c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// SQLitePath returns the SQLite file, defaulting to an in-memory database.
func (c Config) SQLitePath() string {
	if c.Path == "" {
		return ":memory:"
	}
	return c.Path
}

// ConnMaxLifetime returns the connection max lifetime as a duration
func (c Config) ConnMaxLifetime() time.Duration {
	if c.ConnMaxLifetimeMin <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.ConnMaxLifetimeMin) * time.Minute
}

// SlowQueryThreshold returns the slow query threshold as a duration
func (c Config) SlowQueryThreshold() time.Duration {
	if c.SlowQueryThresholdMs <= 0 {
		return 200 * time.Millisecond
	}
	return time.Duration(c.SlowQueryThresholdMs) * time.Millisecond
}

// DefaultConfig returns sensible defaults for database configuration
func DefaultConfig() Config {
	return Config{
		Driver:               DriverSQLite,
		Path:                 "glowgrind.db",
		Host:                 "localhost",
		Port:                 5432,
		SSLMode:              "disable",
		MaxOpenConns:         25,
		MaxIdleConns:         5,
		ConnMaxLifetimeMin:   5,
		AutoMigrate:          true,
		EnableLogging:        false,
		SlowQueryThresholdMs: 200,
	}
}

// FromCentralConfig converts central config.DatabaseConfig to package Config
func FromCentralConfig(c config.DatabaseConfig) Config {
	driver := c.Driver
	if driver == "" {
		driver = DriverSQLite
	}
	return Config{
		Driver:               driver,
		Path:                 c.Path,
		Host:                 c.Host,
		Port:                 c.Port,
		User:                 c.User,
		Password:             c.Password,
		DBName:               c.DBName,
		SSLMode:              c.SSLMode,
		MaxOpenConns:         c.Pool.MaxOpenConns,
		MaxIdleConns:         c.Pool.MaxIdleConns,
		ConnMaxLifetimeMin:   c.Pool.ConnMaxLifetimeMin,
		AutoMigrate:          c.Migrations.AutoMigrate,
		EnableLogging:        c.Logging.Enabled,
		SlowQueryThresholdMs: c.Logging.SlowQueryThresholdMs,
	}
}

// buildDSN creates a PostgreSQL connection string
func buildDSN(host string, port int, user, password, dbname, sslmode string) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)
}
