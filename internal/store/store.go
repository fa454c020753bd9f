// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store is the record store: a SQLite database holding the observed
// authors and the imported publication corpus.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pubwatch/pkg/types"
)

// Store manages the pubwatch SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the SQLite database at cfg.Path and creates the
// schema if it does not exist. A store that cannot be opened is fatal to
// the run; there is no degraded mode.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("store path is empty")
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS authors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			remote_ids TEXT NOT NULL,
			categories TEXT,
			allowed_affiliations TEXT,
			denied_affiliations TEXT,
			UNIQUE(last_name, first_name)
		)`,
		`CREATE TABLE IF NOT EXISTS publications (
			remote_id TEXT PRIMARY KEY,
			doi TEXT,
			title TEXT,
			abstract TEXT,
			published TEXT,
			journal TEXT,
			volume TEXT,
			issn TEXT,
			eid TEXT,
			tags TEXT,
			authors TEXT,
			author_count INTEGER,
			collaboration TEXT,
			affiliations TEXT,
			categories TEXT,
			topics TEXT,
			status TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_published ON publications(published)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_status ON publications(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}
