package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Postgres is a PostgreSQL-backed store.
type Postgres struct {
	db *sqlx.DB
}

// NewPostgres connects to dsn and creates the grammar table if needed.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	p := NewPostgresFromDB(db)
	if err := p.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return p, nil
}

// NewPostgresFromDB wraps an open connection. The schema is not touched.
func NewPostgresFromDB(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates the grammar table.
func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS tracery_grammars (name TEXT PRIMARY KEY, format TEXT NOT NULL, source TEXT NOT NULL, revision UUID NOT NULL, updated_at TIMESTAMPTZ NOT NULL)`)
	if err != nil {
		return fmt.Errorf("failed to create grammar table: %w", err)
	}
	return nil
}

// Get retrieves a grammar by name.
func (p *Postgres) Get(ctx context.Context, name string) (*Entry, error) {
	var e Entry
	err := p.db.GetContext(ctx, &e,
		`SELECT name, format, source, revision, updated_at FROM tracery_grammars WHERE name = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get grammar: %w", err)
	}
	return &e, nil
}

// Put stores a grammar by name.
func (p *Postgres) Put(ctx context.Context, e *Entry) error {
	stamp(e)
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO tracery_grammars (name, format, source, revision, updated_at) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (name) DO UPDATE SET format = EXCLUDED.format, source = EXCLUDED.source, revision = EXCLUDED.revision, updated_at = EXCLUDED.updated_at`,
		e.Name, e.Format, e.Source, e.Revision, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to store grammar: %w", err)
	}
	return nil
}

// Delete removes a grammar by name.
func (p *Postgres) Delete(ctx context.Context, name string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM tracery_grammars WHERE name = $1`, name); err != nil {
		return fmt.Errorf("failed to delete grammar: %w", err)
	}
	return nil
}

// List returns all grammars ordered by name.
func (p *Postgres) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := p.db.SelectContext(ctx, &entries,
		`SELECT name, format, source, revision, updated_at FROM tracery_grammars ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list grammars: %w", err)
	}
	return entries, nil
}

// Close closes the database connection.
func (p *Postgres) Close() error {
	return p.db.Close()
}
