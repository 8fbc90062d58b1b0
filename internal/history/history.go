package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Actions recorded per removal attempt.
const (
	ActionRemove = "REMOVE"  // directory removed
	ActionDryRun = "DRY_RUN" // removal simulated in preview mode
	ActionSkip   = "SKIP"    // blocked by the safety validator
	ActionError  = "ERROR"   // removal attempted and failed
)

// DB manages the SQLite removal log. The log is a write-only audit trail:
// it never influences scanning or deletion decisions.
type DB struct {
	db *sql.DB
}

// Record is a single removal event.
type Record struct {
	ID           int64
	Timestamp    time.Time
	Action       string
	Path         string
	Name         string
	Size         int64
	ErrorMessage string
}

// Open creates the database connection and initializes the schema.
func Open(dbPath string) (*DB, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %s: %w", dir, err)
		}
	}

	// _loc=auto enables automatic DATETIME parsing
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_loc=auto")
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	// Exercise the connection so the file is created up front and
	// permission problems surface before the sweep starts.
	if _, err = db.Exec("SELECT 1"); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history database %s: %w", dbPath, err)
	}

	// WAL mode: readers (the history subcommand) don't block the writer
	if _, err = db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err = db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set synchronous mode: %w", err)
	}

	h := &DB{db: db}
	if err := h.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS removals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		action TEXT NOT NULL,
		path TEXT NOT NULL,
		name TEXT,
		size INTEGER NOT NULL,
		error_message TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_removals_timestamp ON removals(timestamp);
	CREATE INDEX IF NOT EXISTS idx_removals_action ON removals(action);
	`
	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("create history schema: %w", err)
	}
	return nil
}

// RecordRemoval appends one removal event to the log.
func (d *DB) RecordRemoval(action, path string, size int64, errMsg string) error {
	_, err := d.db.Exec(
		`INSERT INTO removals (timestamp, action, path, name, size, error_message)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), action, path, filepath.Base(path), size, errMsg,
	)
	if err != nil {
		return fmt.Errorf("record removal: %w", err)
	}
	return nil
}

func (d *DB) Close() error {
	return d.db.Close()
}
