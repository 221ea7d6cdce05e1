package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/alexanderramin/compass/internal/domain"
	"go.uber.org/zap"
)

// DashboardVersion is the schema tag written with the dashboard slot.
const DashboardVersion = 0

// DashboardStore owns the display preferences shared by the dashboard,
// profile, and finance views.
type DashboardStore struct {
	persist *Persistence
	clock   func() time.Time
	log     *zap.Logger

	mu    sync.Mutex
	state domain.DashboardState
}

// NewDashboardStore creates the store and rehydrates it from the
// dashboard slot. A nil clock means time.Now.
func NewDashboardStore(ctx context.Context, p *Persistence, clock func() time.Time, log *zap.Logger) *DashboardStore {
	if clock == nil {
		clock = time.Now
	}
	s := &DashboardStore{
		persist: p,
		clock:   clock,
		log:     log.Named("dashboard"),
		state:   domain.NewDashboardState(clock().Hour()),
	}
	s.rehydrate(ctx)
	return s
}

func (s *DashboardStore) rehydrate(ctx context.Context) {
	slot := s.persist.load(ctx, DashboardKey)
	if slot == nil {
		return
	}
	// Start from defaults so fields missing from the payload keep them.
	restored := s.state
	if err := json.Unmarshal(slot.Payload, &restored); err != nil {
		s.log.Warn("discarding unreadable dashboard slot", zap.Error(err))
		return
	}
	if _, err := domain.ParseYearKey(string(restored.ActiveYear)); err != nil {
		restored.ActiveYear = domain.YearFreshman
	}
	s.state = restored
}

// Get returns the current snapshot.
func (s *DashboardStore) Get() domain.DashboardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *DashboardStore) SetActiveYear(ctx context.Context, y domain.YearKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ActiveYear = y
	s.saveLocked(ctx)
}

// SetGreeting derives the greeting from the current hour, addressing
// name when it is non-empty.
func (s *DashboardStore) SetGreeting(ctx context.Context, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Greeting = domain.GreetingFor(s.clock().Hour(), name)
	s.saveLocked(ctx)
}

func (s *DashboardStore) SetFunFact(ctx context.Context, fact string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.FunFact = fact
	s.saveLocked(ctx)
}

// SetSelectedMajor changes the roadmap's major. Onboarding goes through
// ConfirmMajor instead so both stores move together.
func (s *DashboardStore) SetSelectedMajor(ctx context.Context, major string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedMajor = major
	s.saveLocked(ctx)
}

// SaveProfile applies the profile editor. An empty name changes nothing
// and reports false.
func (s *DashboardStore) SaveProfile(ctx context.Context, name, funFact string) bool {
	if name == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Greeting = domain.GreetingFor(s.clock().Hour(), name)
	s.state.FunFact = funFact
	s.saveLocked(ctx)
	return true
}

// Reset restores the defaults for the current hour.
func (s *DashboardStore) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.NewDashboardState(s.clock().Hour())
	s.saveLocked(ctx)
}

func (s *DashboardStore) saveLocked(ctx context.Context) {
	s.persist.save(ctx, DashboardKey, DashboardVersion, s.state)
}
