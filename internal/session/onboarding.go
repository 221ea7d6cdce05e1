package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/alexanderramin/compass/internal/advising"
	"github.com/alexanderramin/compass/internal/domain"
	"go.uber.org/zap"
)

// OnboardingVersion is the schema tag written with the onboarding slot.
const OnboardingVersion = 1

var (
	ErrInvalidStep     = errors.New("step out of range")
	ErrUnknownInterest = errors.New("interest not in vocabulary")

	// ErrSuperseded is returned by FetchSuggestedMajors when a reset, a
	// step change, or a newer fetch happened while the call was in flight.
	// The result was discarded.
	ErrSuperseded = errors.New("recommendation superseded")
)

// onboardingPayload is the persisted subset: the school, plus the major
// only when the student said they already know it.
type onboardingPayload struct {
	School        string  `json:"school"`
	SelectedMajor *string `json:"selectedMajor"`
}

// onboardingPayloadV0 is what the first release wrote.
type onboardingPayloadV0 struct {
	SchoolName string `json:"school_name"`
}

// OnboardingStore owns the wizard state. All methods are safe for
// concurrent use; the recommendation call runs without holding the lock.
type OnboardingStore struct {
	rec     advising.Recommender
	persist *Persistence
	log     *zap.Logger

	mu    sync.Mutex
	state domain.OnboardingState
	gen   uint64
}

// NewOnboardingStore creates the store and rehydrates it from the
// onboarding slot. Rehydrated state always starts at the welcome step.
func NewOnboardingStore(ctx context.Context, availableMajors []string, rec advising.Recommender, p *Persistence, log *zap.Logger) *OnboardingStore {
	s := &OnboardingStore{
		rec:     rec,
		persist: p,
		log:     log.Named("onboarding"),
		state:   domain.NewOnboardingState(availableMajors),
	}
	s.rehydrate(ctx)
	return s
}

func (s *OnboardingStore) rehydrate(ctx context.Context) {
	slot := s.persist.load(ctx, OnboardingKey)
	if slot == nil {
		return
	}
	payload, err := migrateOnboarding(slot.Version, slot.Payload)
	if err != nil {
		s.log.Warn("discarding unreadable onboarding slot",
			zap.Int("version", slot.Version), zap.Error(err))
		return
	}
	s.state.School = payload.School
	if payload.SelectedMajor != nil {
		m := *payload.SelectedMajor
		s.state.SelectedMajor = &m
		s.state.KnowsMajor = domain.KnowsMajorYes
	}
}

// migrateOnboarding upgrades any stored payload to the current shape.
func migrateOnboarding(version int, raw []byte) (onboardingPayload, error) {
	switch version {
	case 0:
		var v0 onboardingPayloadV0
		if err := json.Unmarshal(raw, &v0); err != nil {
			return onboardingPayload{}, fmt.Errorf("decoding v0 payload: %w", err)
		}
		return onboardingPayload{School: v0.SchoolName}, nil
	case OnboardingVersion:
		var p onboardingPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return onboardingPayload{}, fmt.Errorf("decoding v1 payload: %w", err)
		}
		return p, nil
	default:
		return onboardingPayload{}, fmt.Errorf("unsupported onboarding version %d", version)
	}
}

// Get returns a deep copy of the current state.
func (s *OnboardingStore) Get() domain.OnboardingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// SetStep moves the wizard. Step 0 is a full reset. Any step change
// supersedes an in-flight recommendation.
func (s *OnboardingStore) SetStep(ctx context.Context, step domain.Step) error {
	if !step.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidStep, int(step))
	}
	if step == domain.StepWelcome {
		s.Reset(ctx)
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Step != step {
		s.supersedeLocked()
	}
	s.state.Step = step
	return nil
}

func (s *OnboardingStore) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = loading
}

// SetError records a failure message; "" clears it.
func (s *OnboardingStore) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg == "" {
		s.state.Error = nil
		return
	}
	s.state.Error = &msg
}

// SetSchool stores the school name without surrounding whitespace, so a
// blank answer never satisfies the school step.
func (s *OnboardingStore) SetSchool(ctx context.Context, school string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.School = strings.TrimSpace(school)
	s.saveLocked(ctx)
}

// SetKnowsMajor records the answer to the major check. Changing the answer
// drops the selection and any suggestions: a major confirmed under one
// answer was not offered under the other.
func (s *OnboardingStore) SetKnowsMajor(ctx context.Context, k domain.KnowsMajor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.KnowsMajor != k {
		s.supersedeLocked()
		s.state.SelectedMajor = nil
		s.state.SuggestedMajors = []string{}
		s.state.Error = nil
	}
	s.state.KnowsMajor = k
	s.saveLocked(ctx)
}

// SetSelectedMajor sets or, with "", clears the selection. It does not
// touch the dashboard; use ConfirmMajor for a confirmed choice.
func (s *OnboardingStore) SetSelectedMajor(ctx context.Context, major string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setSelectedLocked(major)
	s.saveLocked(ctx)
}

func (s *OnboardingStore) setSelectedLocked(major string) {
	if major == "" {
		s.state.SelectedMajor = nil
		return
	}
	s.state.SelectedMajor = &major
}

// ToggleInterest adds the interest if absent, removes it otherwise.
func (s *OnboardingStore) ToggleInterest(interest string) error {
	if !domain.IsInterest(interest) {
		return fmt.Errorf("%w: %q", ErrUnknownInterest, interest)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.state.Interests, interest); i >= 0 {
		s.state.Interests = slices.Delete(s.state.Interests, i, i+1)
		return nil
	}
	s.state.Interests = append(s.state.Interests, interest)
	return nil
}

// SetInterests replaces the selected set. Duplicates collapse and
// unknown entries are rejected without changing state.
func (s *OnboardingStore) SetInterests(interests []string) error {
	set := make([]string, 0, len(interests))
	for _, in := range interests {
		if !domain.IsInterest(in) {
			return fmt.Errorf("%w: %q", ErrUnknownInterest, in)
		}
		if !slices.Contains(set, in) {
			set = append(set, in)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Interests = set
	return nil
}

func (s *OnboardingStore) SetSuggestedMajors(majors []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SuggestedMajors = append([]string{}, majors...)
}

func (s *OnboardingStore) SetAvailableMajors(majors []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AvailableMajors = slices.Clone(majors)
}

// Reset restores every field to its initial value, erases the persisted
// slot, and supersedes any in-flight recommendation.
func (s *OnboardingStore) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supersedeLocked()
	s.state = domain.NewOnboardingState(s.state.AvailableMajors)
	s.persist.erase(ctx, OnboardingKey)
}

// EndSession is called when the program exits; onboarding progress does
// not outlive the session that made it.
func (s *OnboardingStore) EndSession(ctx context.Context) {
	s.Reset(ctx)
}

// FetchSuggestedMajors asks the recommender for majors matching the
// current interests and school. On success SuggestedMajors holds the top
// results; on failure Error holds a displayable message, SuggestedMajors
// is empty, and the error is returned. IsLoading is true only while the
// call is in flight.
func (s *OnboardingStore) FetchSuggestedMajors(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.state.IsLoading = true
	s.state.Error = nil
	interests := slices.Clone(s.state.Interests)
	school := s.state.School
	s.mu.Unlock()

	majors, err := s.rec.Recommend(ctx, interests, school)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		s.log.Debug("dropping superseded recommendation", zap.Uint64("gen", gen), zap.Uint64("current", s.gen))
		return ErrSuperseded
	}
	s.state.IsLoading = false
	if err != nil {
		msg := advising.UserMessage(err)
		s.state.Error = &msg
		s.state.SuggestedMajors = []string{}
		s.log.Info("recommendation failed", zap.Error(err))
		return err
	}
	s.state.SuggestedMajors = append([]string{}, majors...)
	return nil
}

// supersedeLocked invalidates any in-flight fetch. The abandoned call can
// no longer settle, so loading ends here.
func (s *OnboardingStore) supersedeLocked() {
	s.gen++
	s.state.IsLoading = false
}

func (s *OnboardingStore) payloadLocked() onboardingPayload {
	p := onboardingPayload{School: s.state.School}
	if s.state.KnowsMajor == domain.KnowsMajorYes && s.state.SelectedMajor != nil {
		m := *s.state.SelectedMajor
		p.SelectedMajor = &m
	}
	return p
}

func (s *OnboardingStore) saveLocked(ctx context.Context) {
	s.persist.save(ctx, OnboardingKey, OnboardingVersion, s.payloadLocked())
}
