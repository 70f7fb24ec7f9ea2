// Package database wraps the optional SQLite store: a week-result
// cache keyed by workbook content hash, and web-push subscriptions.
// The engine itself stays clean-slate per request; the cache is a pure
// addition enabled only when a database path is configured.
package database

import (
	"database/sql"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQLite database connection.
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes schema.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, err
	}

	log.Printf("Database initialized at %s", dbPath)
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) initSchema() error {
	schema := `
	-- Assembled week results, keyed by workbook content hashes so a
	-- stale cache can never serve records for changed sheets.
	CREATE TABLE IF NOT EXISTS week_cache (
		cache_key TEXT NOT NULL,
		week INTEGER NOT NULL,
		payload TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(cache_key, week)
	);

	-- Browser push subscriptions (raw subscription JSON).
	CREATE TABLE IF NOT EXISTS push_subscriptions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		subscription TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_week_cache_key ON week_cache(cache_key, week);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// GetWeekCache returns a cached payload for (key, week). The cache is
// best effort: lookup errors are logged and read as a miss.
func (db *DB) GetWeekCache(key string, week int) ([]byte, bool) {
	var payload string
	err := db.conn.QueryRow(
		`SELECT payload FROM week_cache WHERE cache_key = ? AND week = ?`,
		key, week,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		log.Printf("Database: week cache lookup failed: %v", err)
		return nil, false
	}
	return []byte(payload), true
}

// PutWeekCache stores a week's payload, replacing any prior entry for
// the same key.
func (db *DB) PutWeekCache(key string, week int, payload []byte) error {
	_, err := db.conn.Exec(
		`INSERT OR REPLACE INTO week_cache (cache_key, week, payload) VALUES (?, ?, ?)`,
		key, week, string(payload),
	)
	return err
}

// SavePushSubscription stores a browser push subscription. Duplicates
// are ignored.
func (db *DB) SavePushSubscription(subscription string) error {
	_, err := db.conn.Exec(
		`INSERT OR IGNORE INTO push_subscriptions (subscription) VALUES (?)`,
		subscription,
	)
	return err
}

// PushSubscriptions returns all stored subscriptions.
func (db *DB) PushSubscriptions() ([]string, error) {
	rows, err := db.conn.Query(`SELECT subscription FROM push_subscriptions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// DeletePushSubscription removes a subscription, typically after the
// push endpoint reports it gone.
func (db *DB) DeletePushSubscription(subscription string) error {
	_, err := db.conn.Exec(
		`DELETE FROM push_subscriptions WHERE subscription = ?`,
		subscription,
	)
	return err
}
