// Package store persists generated fusion router configurations: a sqlite
// generation history plus an on-disk artifact directory.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/fabricware/fusiongen/pkg/errors"
)

// Generation is one generated configuration in the history.
type Generation struct {
	// ID is a UUID assigned when the record is saved.
	ID string `json:"id"`
	// RequestID correlates the configs of one /generate call.
	RequestID string `json:"request_id"`

	RouterHostname string `json:"router_hostname"`
	InterfaceMode  string `json:"interface_mode"`
	ConfigText     string `json:"config_text"`

	CreatedAt time.Time `json:"created_at"`
}

const schema = `
CREATE TABLE IF NOT EXISTS generations (
	id              TEXT PRIMARY KEY,
	request_id      TEXT NOT NULL,
	router_hostname TEXT NOT NULL,
	interface_mode  TEXT NOT NULL,
	config_text     TEXT NOT NULL,
	created_at      TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_generations_created_at ON generations(created_at);
CREATE INDEX IF NOT EXISTS idx_generations_request_id ON generations(request_id);
`

// Store is a sqlite-backed generation history. Safe for concurrent use; the
// driver and WAL mode serialize writes.
type Store struct {
	db        *sql.DB
	closeOnce sync.Once
}

// Open opens (creating if needed) the generation history database at path.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, errors.StoreError("create database directory", err)
		}
	}

	// _txlock=immediate makes write transactions take their lock up front,
	// avoiding lock-upgrade races under concurrent generate requests.
	db, err := sql.Open("sqlite3", path+"?_txlock=immediate")
	if err != nil {
		return nil, errors.StoreError("open database", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.StoreError("set pragma", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.StoreError("apply schema", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database. Idempotent.
func (s *Store) Close() error {
	var closeErr error
	s.closeOnce.Do(func() {
		closeErr = s.db.Close()
	})
	return closeErr
}

// SaveGeneration inserts one generation record, assigning its ID and
// timestamp when unset.
func (s *Store) SaveGeneration(ctx context.Context, g *Generation) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO generations (id, request_id, router_hostname, interface_mode, config_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, g.ID, g.RequestID, g.RouterHostname, g.InterfaceMode, g.ConfigText, g.CreatedAt)
	if err != nil {
		return errors.StoreError("save generation", err)
	}
	return nil
}

// GetGeneration loads one generation by ID; returns nil if not found.
func (s *Store) GetGeneration(ctx context.Context, id string) (*Generation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, request_id, router_hostname, interface_mode, config_text, created_at
		FROM generations WHERE id = ?
	`, id)

	var g Generation
	err := row.Scan(&g.ID, &g.RequestID, &g.RouterHostname, &g.InterfaceMode, &g.ConfigText, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.StoreError("get generation", err)
	}
	return &g, nil
}

// ListGenerations returns the newest records first, up to limit.
func (s *Store) ListGenerations(ctx context.Context, limit int) ([]*Generation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, request_id, router_hostname, interface_mode, config_text, created_at
		FROM generations ORDER BY created_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, errors.StoreError("list generations", err)
	}
	defer rows.Close()

	var result []*Generation
	for rows.Next() {
		var g Generation
		if err := rows.Scan(&g.ID, &g.RequestID, &g.RouterHostname, &g.InterfaceMode,
			&g.ConfigText, &g.CreatedAt); err != nil {
			return nil, errors.StoreError("scan generation", err)
		}
		result = append(result, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.StoreError("list generations", err)
	}
	return result, nil
}
