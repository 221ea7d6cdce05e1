// Package onboarding drives the intake wizard: welcome, school, whether
// the student knows their major, the major or their interests, and the
// results.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/session"
	"go.uber.org/zap"
)

var (
	ErrStepIncomplete  = errors.New("current step is incomplete")
	ErrTerminalStep    = errors.New("already at the last step")
	ErrMajorNotOffered = errors.New("major was not offered for selection")
	ErrNoMajorSelected = errors.New("no major selected")
)

// Catalog is the read side of the major catalog the machine needs.
type Catalog interface {
	Find(name string) (domain.Major, error)
}

// Machine applies the wizard's transition rules on top of the two stores.
type Machine struct {
	ob      *session.OnboardingStore
	dash    *session.DashboardStore
	catalog Catalog
	log     *zap.Logger
}

// New creates a Machine over the given stores.
func New(ob *session.OnboardingStore, dash *session.DashboardStore, catalog Catalog, log *zap.Logger) *Machine {
	return &Machine{ob: ob, dash: dash, catalog: catalog, log: log.Named("machine")}
}

// State returns the current wizard snapshot.
func (m *Machine) State() domain.OnboardingState {
	return m.ob.Get()
}

// Complete reports whether s satisfies the forward predicate of its step.
func Complete(s domain.OnboardingState) bool {
	switch s.Step {
	case domain.StepWelcome:
		return true
	case domain.StepSchool:
		return s.School != ""
	case domain.StepMajorCheck:
		return s.KnowsMajor != domain.KnowsMajorUnknown
	case domain.StepMajorOrInterests:
		switch s.KnowsMajor {
		case domain.KnowsMajorYes:
			return s.SelectedMajor != nil
		case domain.KnowsMajorNo:
			return len(s.Interests) > 0
		}
		return false
	default:
		return false
	}
}

// CanAdvance reports whether Advance would move forward.
func (m *Machine) CanAdvance() bool {
	s := m.ob.Get()
	return s.Step != domain.LastStep && Complete(s)
}

// Advance moves one step forward. Leaving the major-or-interests step
// without a known major waits for the recommendation to settle; the move
// to results happens whether the call succeeded or not, and any failure is
// left on the state for the results step to show. If the wizard was reset
// or moved while the call was in flight, nothing moves and
// session.ErrSuperseded is returned.
func (m *Machine) Advance(ctx context.Context) error {
	s := m.ob.Get()
	if s.Step == domain.LastStep {
		return ErrTerminalStep
	}
	if !Complete(s) {
		return fmt.Errorf("%w: %s", ErrStepIncomplete, s.Step)
	}

	if s.Step == domain.StepMajorOrInterests && s.KnowsMajor == domain.KnowsMajorNo {
		if err := m.fetch(ctx); err != nil {
			return err
		}
	}
	next := s.Step + 1
	m.log.Debug("advance", zap.Stringer("from", s.Step), zap.Stringer("to", next))
	return m.ob.SetStep(ctx, next)
}

// Retry re-runs the recommendation from the results step. It is only
// offered when the student asked for suggestions.
func (m *Machine) Retry(ctx context.Context) error {
	s := m.ob.Get()
	if s.Step != domain.StepResults || s.KnowsMajor != domain.KnowsMajorNo {
		return fmt.Errorf("%w: retry needs the results step with interests", ErrStepIncomplete)
	}
	return m.fetch(ctx)
}

// fetch runs the recommendation and swallows its failure, which is
// already recorded on the state. Only supersession stops the caller.
func (m *Machine) fetch(ctx context.Context) error {
	err := m.ob.FetchSuggestedMajors(ctx)
	if errors.Is(err, session.ErrSuperseded) {
		return err
	}
	if err != nil {
		m.log.Debug("recommendation settled with error", zap.Error(err))
	}
	return nil
}

// Retreat moves one step back without checking predicates. Retreating
// into the welcome step abandons all progress.
func (m *Machine) Retreat(ctx context.Context) {
	s := m.ob.Get()
	if s.Step == domain.StepWelcome {
		return
	}
	_ = m.ob.SetStep(ctx, s.Step-1)
}

// Restart abandons all progress and returns to the welcome step.
func (m *Machine) Restart(ctx context.Context) {
	m.ob.Reset(ctx)
}

// SetStep jumps directly to step. Step 0 is a full reset.
func (m *Machine) SetStep(ctx context.Context, step domain.Step) error {
	return m.ob.SetStep(ctx, step)
}

// ConfirmMajorSelection records major in both stores at once. Where the
// major may come from depends on the student's answer: the catalog when
// they know their major, the current suggestions when they do not.
func (m *Machine) ConfirmMajorSelection(ctx context.Context, major string) error {
	s := m.ob.Get()
	var offered []string
	switch s.KnowsMajor {
	case domain.KnowsMajorYes:
		offered = s.AvailableMajors
	case domain.KnowsMajorNo:
		offered = s.SuggestedMajors
	}
	if !slices.Contains(offered, major) {
		return fmt.Errorf("%w: %q (knows major: %s)", ErrMajorNotOffered, major, s.KnowsMajor)
	}
	session.ConfirmMajor(ctx, m.ob, m.dash, major)
	m.log.Info("major confirmed", zap.String("major", major), zap.Stringer("source", s.KnowsMajor))
	return nil
}

// HandleMajorSelection is the view-facing name for ConfirmMajorSelection.
func (m *Machine) HandleMajorSelection(ctx context.Context, major string) error {
	return m.ConfirmMajorSelection(ctx, major)
}

// Summary returns the catalog entry of the confirmed major. A suggested
// major the catalog does not carry yields an error wrapping the
// catalog's lookup failure.
func (m *Machine) Summary() (domain.Major, error) {
	name := m.ob.Get().SelectedMajorName()
	if name == "" {
		return domain.Major{}, ErrNoMajorSelected
	}
	return m.catalog.Find(name)
}
