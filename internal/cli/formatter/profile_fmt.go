package formatter

import (
	"strings"

	"github.com/alexanderramin/compass/internal/domain"
)

// FormatProfile renders the dashboard preferences the profile editor
// controls.
func FormatProfile(s domain.DashboardState) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(Header("Profile"))
	b.WriteString("\n\n")
	b.WriteString("  " + StyleBold.Render(s.Greeting) + "\n")
	b.WriteString("  " + FunFactLine(s.FunFact) + "\n")
	b.WriteString("  " + Dim("Major: ") + StyleFg.Render(s.SelectedMajor) + "\n")
	b.WriteString("  " + Dim("Year:  ") + StyleFg.Render(string(s.ActiveYear)) + "\n\n")
	return b.String()
}

// FunFactLine renders the fun fact or a dim prompt to add one.
func FunFactLine(fact string) string {
	if fact == "" {
		return Dim("No fun fact yet. Add one from your profile.")
	}
	return StylePurple.Render("Fun Fact: ") + StyleFg.Render(fact)
}

// FormatFinance renders the partner links of the finance page.
func FormatFinance(offers []domain.FinanceOffer) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(Header("Financial Buddy"))
	b.WriteString("\n")
	b.WriteString(Dim("  Your Journey to Financial Success Starts Here · Powered by " + domain.FinancePartner))
	b.WriteString("\n\n")
	for i, o := range offers {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("  " + StyleBold.Render(o.Title) + "  " + Dim(o.Description) + "\n")
		for _, h := range o.Highlights {
			b.WriteString("    " + StyleGreen.Render("✓") + " " + StyleFg.Render(h) + "\n")
		}
		b.WriteString("    " + StyleBlue.Render(o.URL) + "\n")
	}
	return b.String()
}
