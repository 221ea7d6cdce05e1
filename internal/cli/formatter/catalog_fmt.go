package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatMajorList renders the catalog as a table of majors with their
// course counts.
func FormatMajorList(university string, majors []domain.Major) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(Header(university))
	b.WriteString("\n\n")

	if len(majors) == 0 {
		b.WriteString(Dim("  No majors in the catalog.") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(majors))
	for _, m := range majors {
		rows = append(rows, []string{
			StyleFg.Render(m.Name),
			fmt.Sprintf("%d", m.CourseCount()),
			yearsOffered(m),
		})
	}
	b.WriteString(RenderTable([]string{"MAJOR", "COURSES", "YEARS"}, rows))
	b.WriteString("\n")
	return b.String()
}

func yearsOffered(m domain.Major) string {
	var n int
	for _, y := range domain.Years() {
		s := m.Year(y)
		if len(s.Fall)+len(s.Spring) > 0 {
			n++
		}
	}
	return fmt.Sprintf("%d/%d", n, len(domain.Years()))
}

// semesterGap separates the Fall and Spring columns.
const semesterGap = 4

// FormatYear renders one class level as Fall and Spring columns. The Fall
// column is as wide as its longest course so no course name wraps.
func FormatYear(m domain.Major, y domain.YearKey) string {
	s := m.Year(y)
	fall := StyleBlue.Render("Fall Semester") + "\n" + Bullets(s.Fall, "No courses listed")
	spring := StyleBlue.Render("Spring Semester") + "\n" + Bullets(s.Spring, "No courses listed")
	col := lipgloss.NewStyle().Width(lipgloss.Width(fall) + semesterGap)
	return lipgloss.JoinHorizontal(lipgloss.Top, col.Render(fall), spring)
}

// FormatRoadmap renders the curriculum of m. With only set, just that
// year is shown; otherwise all four in order.
func FormatRoadmap(m domain.Major, only *domain.YearKey) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(Header("Your Roadmap for " + m.Name))
	b.WriteString("\n")

	years := domain.Years()
	if only != nil {
		years = []domain.YearKey{*only}
	}
	for _, y := range years {
		b.WriteString("\n")
		b.WriteString(StyleBold.Render(string(y)) + "\n")
		b.WriteString(FormatYear(m, y))
		b.WriteString("\n")
	}
	return b.String()
}

// YearTabs renders the class levels as a tab strip with active highlighted.
func YearTabs(active domain.YearKey) string {
	tabs := make([]string, 0, len(domain.Years()))
	for i, y := range domain.Years() {
		label := fmt.Sprintf("%d %s", i+1, y)
		if y == active {
			tabs = append(tabs, StyleHeader.Render("["+label+"]"))
		} else {
			tabs = append(tabs, Dim(" "+label+" "))
		}
	}
	return strings.Join(tabs, " ")
}
