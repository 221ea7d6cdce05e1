package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/alexanderramin/compass/internal/db"
	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Slot keys. These match the keys earlier releases wrote, so existing
// databases keep their state.
const (
	OnboardingKey = "onboarding-storage"
	DashboardKey  = "dashboard-storage"
)

// Persistence is the best-effort slot writer shared by both stores. Every
// fault is logged and swallowed; callers never see a persistence error.
// A nil *Persistence keeps everything in memory.
type Persistence struct {
	repo      repository.SlotRepo
	uow       db.UnitOfWork
	log       *zap.Logger
	sessionID string
}

// NewPersistence creates a Persistence over an open database.
func NewPersistence(conn *sql.DB, log *zap.Logger) *Persistence {
	return NewPersistenceWith(repository.NewSQLiteSlotRepo(conn), db.NewSQLiteUnitOfWork(conn), log)
}

// NewPersistenceWith wires explicit collaborators.
func NewPersistenceWith(repo repository.SlotRepo, uow db.UnitOfWork, log *zap.Logger) *Persistence {
	return &Persistence{
		repo:      repo,
		uow:       uow,
		log:       log.Named("persist"),
		sessionID: uuid.NewString(),
	}
}

// SessionID identifies this process as the writer of its slots.
func (p *Persistence) SessionID() string {
	if p == nil {
		return ""
	}
	return p.sessionID
}

type slotWrite struct {
	key     string
	version int
	value   any
}

// load returns the stored slot, or nil when absent or unreadable.
func (p *Persistence) load(ctx context.Context, key string) *domain.Slot {
	if p == nil {
		return nil
	}
	s, err := p.repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			p.log.Warn("slot load failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	return s
}

func (p *Persistence) save(ctx context.Context, key string, version int, value any) {
	p.saveAll(ctx, slotWrite{key: key, version: version, value: value})
}

// saveAll writes every slot in one transaction: all of them land or none do.
func (p *Persistence) saveAll(ctx context.Context, writes ...slotWrite) {
	if p == nil || len(writes) == 0 {
		return
	}
	slots := make([]*domain.Slot, 0, len(writes))
	for _, w := range writes {
		payload, err := json.Marshal(w.value)
		if err != nil {
			p.log.Error("slot encode failed", zap.String("key", w.key), zap.Error(err))
			return
		}
		slots = append(slots, &domain.Slot{Key: w.key, Version: w.version, Payload: payload, WrittenBy: p.sessionID})
	}

	err := p.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteSlotRepo(tx)
		for _, s := range slots {
			if err := repo.Put(ctx, s); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		keys := make([]string, len(slots))
		for i, s := range slots {
			keys[i] = s.Key
		}
		p.log.Warn("slot save failed; continuing without persistence",
			zap.Strings("keys", keys), zap.Error(err))
	}
}

func (p *Persistence) erase(ctx context.Context, key string) {
	if p == nil {
		return
	}
	if err := p.repo.Delete(ctx, key); err != nil {
		p.log.Warn("slot erase failed", zap.String("key", key), zap.Error(err))
	}
}

func (p *Persistence) eraseAll(ctx context.Context) {
	if p == nil {
		return
	}
	if err := p.repo.DeleteAll(ctx); err != nil {
		p.log.Warn("slot clear failed", zap.Error(err))
	}
}
