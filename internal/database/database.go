package database

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// InitDB initializes the database and ensures the schema is up to date.
func InitDB(dbPath string, primaryUrl string, authToken string) (*sql.DB, error) {
	// For local-only databases, dbPath is the filename.
	// For embedded replicas, dbPath is the local file, and primaryUrl is the remote.
	// We handle the local-only case separately for clarity.
	if primaryUrl == "" {
		log.Info("Initializing local-only SQLite database", "path", dbPath)
		db, err := sql.Open("libsql", "file:"+dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open local database: %w", err)
		}
		if err = createTables(db); err != nil {
			db.Close() // Close on error
			return nil, fmt.Errorf("failed to create tables for local db: %w", err)
		}
		return db, nil
	}
	log.Info("Initializing Turso database", "url", primaryUrl)
	db, err := sql.Open("libsql", primaryUrl+"?authToken="+authToken)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open db %s: %s", primaryUrl, err)
		return nil, fmt.Errorf("failed to open db %s: %w", primaryUrl, err)
	}
	if err = createTables(db); err != nil {
		db.Close() // Close on error
		return nil, fmt.Errorf("failed to create tables for db: %w", err)
	}
	return db, nil
}

func createTables(db *sql.DB) error {
	// Foreign key support is not enabled by default in SQLite
	_, err := db.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		log.Error("Error enabling foreign keys:", "error", err)
		return err
	}

	createChallengesTable := `
	CREATE TABLE IF NOT EXISTS challenges (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		state TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		challengers_json TEXT NOT NULL,
		challenged_json TEXT NOT NULL
	);`

	createPlayersTable := `
	CREATE TABLE IF NOT EXISTS players (
		name TEXT PRIMARY KEY,
		wins INTEGER NOT NULL DEFAULT 0,
		losses INTEGER NOT NULL DEFAULT 0,
		elo DOUBLE NOT NULL DEFAULT 0,
		tau DOUBLE NOT NULL DEFAULT 0,
		current_challenge_id TEXT,
		FOREIGN KEY (current_challenge_id) REFERENCES challenges(id) ON DELETE SET NULL
	);`

	createMetricsTable := `
	CREATE TABLE IF NOT EXISTS metrics (
		key TEXT PRIMARY KEY,
		value INTEGER NOT NULL DEFAULT 0
	);`

	_, err = db.Exec(createChallengesTable)
	if err != nil {
		return err
	}

	_, err = db.Exec(createPlayersTable)
	if err != nil {
		return err
	}

	_, err = db.Exec(createMetricsTable)
	if err != nil {
		return err
	}
	log.Info("Database initialized successfully")
	return nil
}
