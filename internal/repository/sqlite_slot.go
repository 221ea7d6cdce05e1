package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/compass/internal/db"
	"github.com/alexanderramin/compass/internal/domain"
)

// SQLiteSlotRepo implements SlotRepo using a SQLite database.
type SQLiteSlotRepo struct {
	db db.DBTX
}

// NewSQLiteSlotRepo creates a new SQLiteSlotRepo.
func NewSQLiteSlotRepo(conn db.DBTX) *SQLiteSlotRepo {
	return &SQLiteSlotRepo{db: conn}
}

func (r *SQLiteSlotRepo) Get(ctx context.Context, key string) (*domain.Slot, error) {
	query := `SELECT key, version, payload, updated_at, written_by FROM slots WHERE key = ?`
	row := r.db.QueryRowContext(ctx, query, key)

	var (
		s         domain.Slot
		payload   string
		updatedAt string
	)
	err := row.Scan(&s.Key, &s.Version, &payload, &updatedAt, &s.WrittenBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("slot %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning slot %q: %w", key, err)
	}
	s.Payload = []byte(payload)
	s.UpdatedAt = parseTime(updatedAt)
	return &s, nil
}

// Put inserts or replaces the slot. UpdatedAt is stamped when zero.
func (r *SQLiteSlotRepo) Put(ctx context.Context, s *domain.Slot) error {
	updatedAt := nowUTC()
	if !s.UpdatedAt.IsZero() {
		updatedAt = s.UpdatedAt.UTC().Format(time.RFC3339)
	}
	query := `INSERT OR REPLACE INTO slots (key, version, payload, updated_at, written_by)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, s.Key, s.Version, string(s.Payload), updatedAt, s.WrittenBy)
	if err != nil {
		return fmt.Errorf("upserting slot %q: %w", s.Key, err)
	}
	return nil
}

// Delete removes the slot. Deleting an absent key is not an error.
func (r *SQLiteSlotRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting slot %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteSlotRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM slots`); err != nil {
		return fmt.Errorf("clearing slots: %w", err)
	}
	return nil
}

func (r *SQLiteSlotRepo) ListKeys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM slots ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing slots: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning slot key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
