package testutil

import (
	"time"

	"github.com/alexanderramin/compass/internal/domain"
)

// Major options
type MajorOption func(*domain.Major)

// WithYear sets the courses for one class level.
func WithYear(y domain.YearKey, fall, spring []string) MajorOption {
	return func(m *domain.Major) {
		m.Curriculum[y] = domain.Semester{Fall: fall, Spring: spring}
	}
}

// NewTestMajor returns a major with a one-course freshman year unless
// options override the curriculum.
func NewTestMajor(name string, opts ...MajorOption) domain.Major {
	m := domain.Major{
		Name: name,
		Curriculum: domain.Curriculum{
			domain.YearFreshman: {Fall: []string{name + " 101"}, Spring: []string{name + " 102"}},
		},
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// FixedClock returns a clock func pinned to the given hour today (UTC).
func FixedClock(hour int) func() time.Time {
	t := time.Date(2024, 9, 2, hour, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}
