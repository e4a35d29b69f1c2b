package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"movie-catalog/internal/logging"
)

// Default timeout for database operations
const defaultTimeout = 5 * time.Second

// Database is the SQLite-backed catalog store.
type Database struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// New opens (or creates) the store at dbPath. dbPath must be the full path
// to the database file and its parent directory must already exist; use
// startup.LoadConfig for directory validation.
func New(ctx context.Context, dbPath string) (*Database, error) {
	logging.Info("Catalog store path: %s", dbPath)

	// WAL mode keeps concurrent scan-worker saves from blocking readers;
	// busy_timeout prevents "database is locked" errors.
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	d := &Database{
		db:     db,
		dbPath: dbPath,
	}

	if err := d.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after initialization failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	logging.Info("Catalog store initialized at %s", dbPath)
	return d, nil
}

// initialize creates the schema if it does not exist.
func (d *Database) initialize(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS movies (
		id           INTEGER PRIMARY KEY,
		title        TEXT NOT NULL,
		tagline      TEXT,
		overview     TEXT,
		release_date TEXT,
		cast_list    TEXT,
		source_path  TEXT,
		added_at     INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_movies_title ON movies(title COLLATE NOCASE);
	`

	initCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := d.db.ExecContext(initCtx, schema)
	return err
}

// Close closes the underlying database.
func (d *Database) Close() error {
	return d.db.Close()
}
