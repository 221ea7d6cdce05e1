package domain

// DefaultMajor is shown on the dashboard until the student confirms a major.
const DefaultMajor = "Computer Science"

// Semester holds the ordered course names for one term.
type Semester struct {
	Fall   []string `json:"fall"`
	Spring []string `json:"spring"`
}

// Curriculum maps each class level to its two terms. Missing years are
// treated as empty, not as errors.
type Curriculum map[YearKey]Semester

// Major is an immutable catalog entry.
type Major struct {
	Name       string
	Curriculum Curriculum
}

// Year returns the courses for y. Absent years and terms come back as
// empty (non-nil) slices.
func (m Major) Year(y YearKey) Semester {
	s := m.Curriculum[y]
	out := Semester{
		Fall:   append([]string{}, s.Fall...),
		Spring: append([]string{}, s.Spring...),
	}
	return out
}

// CourseCount returns the total number of courses across all years.
func (m Major) CourseCount() int {
	n := 0
	for _, s := range m.Curriculum {
		n += len(s.Fall) + len(s.Spring)
	}
	return n
}
