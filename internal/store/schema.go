// Package store provides the SQLite-backed document store for interaction
// records. Each record is persisted as a JSON document alongside extracted
// columns for every filterable scalar; array-valued filter paths (channels,
// parties) live in side tables rebuilt within the same write transaction.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS interactions (
	id          TEXT PRIMARY KEY,
	status      TEXT NOT NULL,
	direction   TEXT NOT NULL,
	priority    TEXT NOT NULL,
	start_at    INTEGER NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	reason      TEXT NOT NULL DEFAULT '',
	created_at  INTEGER NOT NULL,
	updated_at  INTEGER NOT NULL,
	doc         TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_interactions_status    ON interactions(status, created_at);
CREATE INDEX IF NOT EXISTS idx_interactions_direction ON interactions(direction, status);
CREATE INDEX IF NOT EXISTS idx_interactions_start     ON interactions(start_at);

CREATE TABLE IF NOT EXISTS interaction_channels (
	interaction_id TEXT NOT NULL,
	name           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_channels_interaction ON interaction_channels(interaction_id);
CREATE INDEX IF NOT EXISTS idx_channels_name        ON interaction_channels(name);

CREATE TABLE IF NOT EXISTS interaction_parties (
	interaction_id TEXT NOT NULL,
	party_id       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_parties_interaction ON interaction_parties(interaction_id);
CREATE INDEX IF NOT EXISTS idx_parties_party       ON interaction_parties(party_id);
`

// DB wraps a sql.DB with interaction-store operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
