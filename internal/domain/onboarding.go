package domain

import "slices"

// OnboardingState is the wizard's progress and the student's choices.
type OnboardingState struct {
	Step      Step
	IsLoading bool
	Error     *string

	School          string
	KnowsMajor      KnowsMajor
	SelectedMajor   *string
	Interests       []string
	SuggestedMajors []string
	AvailableMajors []string
}

// NewOnboardingState returns the initial wizard state for the given
// catalog major names.
func NewOnboardingState(availableMajors []string) OnboardingState {
	return OnboardingState{
		Step:            StepWelcome,
		Interests:       []string{},
		SuggestedMajors: []string{},
		AvailableMajors: slices.Clone(availableMajors),
	}
}

// Clone returns a deep copy so callers can never mutate store internals.
func (s OnboardingState) Clone() OnboardingState {
	out := s
	out.Interests = slices.Clone(s.Interests)
	out.SuggestedMajors = slices.Clone(s.SuggestedMajors)
	out.AvailableMajors = slices.Clone(s.AvailableMajors)
	if s.Error != nil {
		e := *s.Error
		out.Error = &e
	}
	if s.SelectedMajor != nil {
		m := *s.SelectedMajor
		out.SelectedMajor = &m
	}
	if out.Interests == nil {
		out.Interests = []string{}
	}
	if out.SuggestedMajors == nil {
		out.SuggestedMajors = []string{}
	}
	return out
}

// HasInterest reports whether interest is in the selected set.
func (s OnboardingState) HasInterest(interest string) bool {
	return slices.Contains(s.Interests, interest)
}

// SelectedMajorName returns the selected major or "" when unset.
func (s OnboardingState) SelectedMajorName() string {
	if s.SelectedMajor == nil {
		return ""
	}
	return *s.SelectedMajor
}

// ErrorMessage returns the last failure or "" when there is none.
func (s OnboardingState) ErrorMessage() string {
	if s.Error == nil {
		return ""
	}
	return *s.Error
}
