package db

import (
	"context"
	"database/sql"
)

// DBTX is what slot repositories query through. Both a plain connection
// and an open transaction satisfy it, so the same repository can write
// one slot on its own or several slots atomically.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
