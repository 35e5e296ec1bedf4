// Package postgres stores entities in a single PostgreSQL table with the
// attributes kept as JSONB. Apply Migrations with pg.Migrate before use.
package postgres

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/mpjsonapi/crud"
	"github.com/dmitrymomot/mpjsonapi/pkg/pg"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations returns the goose migrations for the entities table.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// DB is the subset of pgxpool.Pool the store uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	upsertEntity = `INSERT INTO entities (type, id, attributes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (type, id) DO UPDATE
SET attributes = EXCLUDED.attributes, updated_at = EXCLUDED.updated_at`

	selectEntity = `SELECT attributes, created_at, updated_at FROM entities WHERE type = $1 AND id = $2`
)

// Store is a crud.Store backed by PostgreSQL.
type Store struct {
	db DB
}

func New(db DB) *Store {
	return &Store{db: db}
}

// Save upserts e. CreatedAt of an existing row is left untouched.
func (s *Store) Save(ctx context.Context, e *crud.Entity) error {
	attrs := e.Attributes
	if attrs == nil {
		attrs = map[string]any{}
	}
	raw, err := json.Marshal(attrs)
	if err != nil {
		return fmt.Errorf("encode attributes: %w", err)
	}

	if _, err := s.db.Exec(ctx, upsertEntity, e.Type, e.ID, raw, e.CreatedAt, e.UpdatedAt); err != nil {
		return fmt.Errorf("upsert entity: %w", err)
	}
	return nil
}

// Find returns crud.ErrEntityNotFound when no row matches.
func (s *Store) Find(ctx context.Context, resourceType, id string) (*crud.Entity, error) {
	e := crud.NewEntity(resourceType, id)

	var raw []byte
	err := s.db.QueryRow(ctx, selectEntity, resourceType, id).Scan(&raw, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s %s", crud.ErrEntityNotFound, resourceType, id)
		}
		return nil, fmt.Errorf("select entity: %w", err)
	}

	if err := json.Unmarshal(raw, &e.Attributes); err != nil {
		return nil, fmt.Errorf("decode attributes: %w", err)
	}
	return e, nil
}
