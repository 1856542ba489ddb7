package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const schema = `CREATE TABLE IF NOT EXISTS plugin_activation (
	id         TEXT PRIMARY KEY,
	active     BOOLEAN NOT NULL DEFAULT 0,
	updated_at TEXT NOT NULL
)`

type activationRow struct {
	ID        string `db:"id"`
	Active    bool   `db:"active"`
	UpdatedAt string `db:"updated_at"`
}

// SQLStore keeps the flags in the plugin_activation table.
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// OpenSQLite opens (and creates if needed) a sqlite database at dsn.
func OpenSQLite(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}
	// One writer keeps sqlite from reporting SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	s, err := NewSQLStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLStore uses db and creates the table if it does not exist.
func NewSQLStore(ctx context.Context, db *sqlx.DB) (*SQLStore, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create plugin_activation table: %w", err)
	}
	return &SQLStore{db: db, now: time.Now}, nil
}

func (s *SQLStore) Load(ctx context.Context) (map[string]bool, error) {
	var rows []activationRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT id, active, updated_at FROM plugin_activation`); err != nil {
		return nil, fmt.Errorf("query plugin_activation: %w", err)
	}
	state := make(map[string]bool, len(rows))
	for _, r := range rows {
		state[r.ID] = r.Active
	}
	return state, nil
}

// Save replaces the table contents in one transaction.
func (s *SQLStore) Save(ctx context.Context, state map[string]bool) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM plugin_activation`); err != nil {
		return fmt.Errorf("clear plugin_activation: %w", err)
	}
	stamp := s.now().UTC().Format(time.RFC3339)
	for id, active := range state {
		row := activationRow{ID: id, Active: active, UpdatedAt: stamp}
		if _, err = tx.NamedExecContext(ctx,
			`INSERT INTO plugin_activation (id, active, updated_at) VALUES (:id, :active, :updated_at)`, row); err != nil {
			return fmt.Errorf("insert %s: %w", id, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
