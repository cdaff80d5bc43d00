// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index loads a manifest into a SQLite database so editors and
// doc tooling can look up a single API without parsing the whole manifest.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scrape-docs/pkg/types"
)

const (
	// DefaultDBPath is used when IndexConfig.DBPath is empty.
	DefaultDBPath = "apidocs.db"

	kindParam = "param"
	kindField = "field"
)

// Store manages the lookup database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the database at cfg.DBPath and creates the schema
// if it does not exist.
func Open(cfg types.IndexConfig) (*Store, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = DefaultDBPath
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
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
		`CREATE TABLE IF NOT EXISTS apis (
			name TEXT PRIMARY KEY,
			help_link TEXT NOT NULL,
			description TEXT,
			return_value TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS api_items (
			api_name TEXT NOT NULL REFERENCES apis(name) ON DELETE CASCADE,
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (api_name, kind, name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_api_items_api_name ON api_items(api_name)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Replace discards the current contents and stores every entry of m in a
// single transaction.
func (s *Store) Replace(ctx context.Context, m types.Manifest) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM api_items`, `DELETE FROM apis`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clearing index: %w", err)
		}
	}

	apiStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO apis (name, help_link, description, return_value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer apiStmt.Close()

	itemStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO api_items (api_name, kind, name, text) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer itemStmt.Close()

	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc := m[name]
		var ret sql.NullString
		if doc.ReturnValue != nil {
			ret = sql.NullString{String: *doc.ReturnValue, Valid: true}
		}
		if _, err := apiStmt.ExecContext(ctx, name, doc.HelpLink, doc.Description, ret); err != nil {
			return fmt.Errorf("inserting %s: %w", name, err)
		}
		for _, group := range []struct {
			kind  string
			items map[string]string
		}{{kindParam, doc.Parameters}, {kindField, doc.Fields}} {
			for item, text := range group.items {
				if _, err := itemStmt.ExecContext(ctx, name, group.kind, item, text); err != nil {
					return fmt.Errorf("inserting %s %s of %s: %w", group.kind, item, name, err)
				}
			}
		}
	}

	return tx.Commit()
}

// Count returns the number of APIs in the index.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM apis`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting apis: %w", err)
	}
	return n, nil
}
