package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/compass/internal/domain"
)

// FormatRecommendations renders suggested majors as a numbered list.
func FormatRecommendations(school string, interests []string, majors []string) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(Header("Here are your recommended majors"))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("  %s · %s", school, strings.Join(interests, ", "))))
	b.WriteString("\n\n")
	b.WriteString(NumberedMajors(majors, -1))
	b.WriteString("\n")
	return b.String()
}

// NumberedMajors renders majors as "1. Name" lines; the entry at cursor
// is highlighted. Pass -1 for no highlight.
func NumberedMajors(majors []string, cursor int) string {
	var b strings.Builder
	for i, m := range majors {
		num := StylePurple.Render(fmt.Sprintf("%d.", i+1))
		name := StyleFg.Render(m)
		if i == cursor {
			name = StyleHeader.Render("▸ " + m)
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", num, name))
	}
	return b.String()
}

// FormatResources renders learning resources for major. An empty list
// renders a friendly placeholder.
func FormatResources(major string, resources []domain.Resource) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(Header("Learning Resources"))
	b.WriteString("\n")
	b.WriteString(Dim("  Recommended materials for " + major))
	b.WriteString("\n\n")
	b.WriteString(ResourceLines(resources, 0))
	b.WriteString("\n")
	return b.String()
}

// ResourceLines renders one resource per line, truncating titles to
// width cells when width is positive.
func ResourceLines(resources []domain.Resource, width int) string {
	if len(resources) == 0 {
		return "  " + Dim("No resources found.") + "\n"
	}
	var b strings.Builder
	for _, r := range resources {
		title := r.Title
		if width > 0 {
			title = Truncate(title, width)
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", ResourceBadge(r.Type), StyleBold.Render(title)))
		if r.URL != "" {
			b.WriteString("      " + StyleBlue.Render(r.URL) + "\n")
		}
	}
	return b.String()
}
