package db

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

//go:embed migrations/sqlite3/*.sql migrations/pgx/*.sql
var migrationsFS embed.FS

type Dialect string

const (
	DialectSqlite   Dialect = "sqlite3"
	DialectPostgres Dialect = "pgx"
)

// Open opens the relational store for the given driver and applies migrations.
// For sqlite3 the dsn is a file path; for pgx it is a postgres connection string.
func Open(driver string, dsn string) (*sql.DB, error) {
	switch Dialect(driver) {
	case DialectSqlite:
		return OpenSqlite(dsn)
	case DialectPostgres:
		return OpenPostgres(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func OpenSqlite(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory for SQLite: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = EXTRA;
		PRAGMA cache_size = -2000;
		PRAGMA busy_timeout = 5000;
		PRAGMA foreign_keys = ON;
	`)
	if err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("failed to set SQLite pragmas: %w", err)
	}

	return finishOpen(db, DialectSqlite, path)
}

func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open Postgres: %w", err)
	}
	return finishOpen(db, DialectPostgres, "postgres")
}

func finishOpen(db *sql.DB, dialect Dialect, location string) (*sql.DB, error) {
	if err := migrateDatabase(db, dialect); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := db.Ping(); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	zap.L().Info("Successfully opened database",
		zap.String("driver", string(dialect)),
		zap.String("location", location),
	)
	return db, nil
}

func closeQuietly(db *sql.DB) {
	if err := db.Close(); err != nil {
		zap.L().Error("Failed to close database", zap.Error(err))
	}
}

func migrateDatabase(db *sql.DB, dialect Dialect) error {
	var (
		driver database.Driver
		err    error
	)
	switch dialect {
	case DialectSqlite:
		driver, err = sqlite3.WithInstance(db, &sqlite3.Config{
			NoTxWrap: true, // Prevent the driver from managing transactions
		})
	case DialectPostgres:
		driver, err = migratepgx.WithInstance(db, &migratepgx.Config{})
	}
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	d, err := iofs.New(migrationsFS, "migrations/"+string(dialect))
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, string(dialect), driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	// We don't defer m.Close() here because it would close our db connection
	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
