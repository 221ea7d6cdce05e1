package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/compass/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

// SlotRepo reads and writes persisted store snapshots.
type SlotRepo interface {
	Get(ctx context.Context, key string) (*domain.Slot, error)
	Put(ctx context.Context, s *domain.Slot) error
	Delete(ctx context.Context, key string) error
	DeleteAll(ctx context.Context) error
	ListKeys(ctx context.Context) ([]string, error)
}
