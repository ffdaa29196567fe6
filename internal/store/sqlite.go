package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/vmihailenco/msgpack/v5"

	"cratefacts/internal/trap"
)

// SQLiteStore keeps the latest batch of one crate in a SQLite database:
// a facts table with one row per fact and a locations table.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &SQLiteStore{db: db, path: path}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS facts (
		label TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		location TEXT,
		body BLOB NOT NULL
	);

	CREATE TABLE IF NOT EXISTS locations (
		label TEXT PRIMARY KEY,
		file TEXT NOT NULL,
		start_line INTEGER NOT NULL,
		start_column INTEGER NOT NULL,
		end_line INTEGER NOT NULL,
		end_column INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_facts_kind ON facts(kind);
	CREATE INDEX IF NOT EXISTS idx_locations_file ON locations(file);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Write replaces the stored batch with b in a single transaction.
func (s *SQLiteStore) Write(ctx context.Context, b *trap.Batch) error {
	return s.withTransaction(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"meta", "facts", "locations"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		meta := [][2]string{
			{"schema", fmt.Sprint(b.Schema)},
			{"crate", b.Crate},
			{"run_id", b.RunID},
		}
		for _, kv := range meta {
			if _, err := tx.ExecContext(ctx, "INSERT INTO meta (key, value) VALUES (?, ?)", kv[0], kv[1]); err != nil {
				return fmt.Errorf("insert meta: %w", err)
			}
		}

		factStmt, err := tx.PrepareContext(ctx, "INSERT INTO facts (label, kind, location, body) VALUES (?, ?, ?, ?)")
		if err != nil {
			return err
		}
		defer factStmt.Close()
		for _, row := range b.Rows {
			body, err := msgpack.Marshal(row)
			if err != nil {
				return fmt.Errorf("encode %s: %w", row.Kind(), err)
			}
			var loc any
			if row.Loc().IsValid() {
				loc = row.Loc().String()
			}
			if _, err := factStmt.ExecContext(ctx, row.Label().String(), row.Kind().String(), loc, body); err != nil {
				return fmt.Errorf("insert %s %s: %w", row.Kind(), row.Label(), err)
			}
		}

		locStmt, err := tx.PrepareContext(ctx, `INSERT INTO locations
			(label, file, start_line, start_column, end_line, end_column) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer locStmt.Close()
		for _, l := range b.Locations {
			if _, err := locStmt.ExecContext(ctx, l.ID.String(), l.File.String(),
				l.StartLine, l.StartColumn, l.EndLine, l.EndColumn); err != nil {
				return fmt.Errorf("insert location %s: %w", l.ID, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) withTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// DB returns the underlying database for queries.
func (s *SQLiteStore) DB() *sql.DB { return s.db }

// Close closes the database connection.
func (s *SQLiteStore) Close() error { return s.db.Close() }
