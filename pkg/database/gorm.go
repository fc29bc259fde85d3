package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite" // pure Go SQLite driver, registered as "sqlite"

	"github.com/glowandgrind/site-api/config"
)

const pingTimeout = 5 * time.Second

type DB struct {
	gorm *gorm.DB
	cfg  Config
}

// NewFromCentral opens the database described by the central config.
func NewFromCentral(cfg config.DatabaseConfig, log *slog.Logger) (*DB, error) {
	return New(FromCentralConfig(cfg), log)
}

func New(cfg Config, log *slog.Logger) (*DB, error) {
	dialector, err := newDialector(cfg)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(cfg, log),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.IsPostgres() {
		// Apply connection pool settings
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if cfg.ConnMaxLifetimeMin > 0 {
			sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime())
		}
	} else {
		// SQLite allows a single writer; an in-memory database lives only as long as its connection.
		sqlDB.SetMaxOpenConns(1)
	}

	db := &DB{gorm: gdb, cfg: cfg}
	if err := db.Ping(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return db, nil
}

func newDialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case DriverSQLite, "":
		path := cfg.SQLitePath()
		conn, err := sql.Open("sqlite", path)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}
		return sqlite.Dialector{
			DriverName: "sqlite",
			DSN:        path,
			Conn:       conn,
		}, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// newGormLogger routes gorm output through slog. SQL is only logged when
// query logging is enabled; otherwise only slow queries and errors surface.
func newGormLogger(cfg Config, log *slog.Logger) logger.Interface {
	if log == nil {
		log = slog.Default()
	}

	level := logger.Warn
	if cfg.EnableLogging {
		level = logger.Info
	}

	return logger.New(
		slog.NewLogLogger(log.With("component", "gorm").Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             cfg.SlowQueryThreshold(),
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      !cfg.EnableLogging,
			Colorful:                  false,
		},
	)
}

func (db *DB) Gorm() *gorm.DB {
	return db.gorm
}

func (db *DB) Config() Config {
	return db.cfg
}

// Migrate creates or updates tables for the given models.
func (db *DB) Migrate(ctx context.Context, models ...any) error {
	if err := db.gorm.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (db *DB) Close() error {
	sqlDB, err := db.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Stats returns database statistics
func (db *DB) Stats() sql.DBStats {
	sqlDB, err := db.gorm.DB()
	if err != nil {
		return sql.DBStats{}
	}
	return sqlDB.Stats()
}

// Ping checks if the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.gorm.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}
