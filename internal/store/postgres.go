package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cbummouad/appall/internal/model"
)

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore writes lead requests straight into a Postgres table.
type PostgresStore struct {
	db    execer
	query string
}

// NewPostgresStore initializes a store over a pgxpool.Pool (or anything with Exec).
func NewPostgresStore(db execer, table string) *PostgresStore {
	if db == nil {
		panic("store: postgres connection required")
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (name, phone, address, email, message, plan, created_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, pgx.Identifier{table}.Sanitize())
	return &PostgresStore{db: db, query: query}
}

// Insert adds one row.
func (s *PostgresStore) Insert(ctx context.Context, rec *model.LeadRequest) error {
	if _, err := s.db.Exec(ctx, s.query,
		rec.Name,
		rec.Phone,
		rec.Address,
		rec.Email,
		rec.Message,
		string(rec.Plan),
		rec.CreatedAt,
		string(rec.Status),
	); err != nil {
		return fmt.Errorf("store: insert failed: %w", err)
	}
	return nil
}
