package cli

import (
	"github.com/alexanderramin/compass/internal/cli/formatter"
	"github.com/alexanderramin/compass/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// financeView lists the Financial Buddy partner links.
type financeView struct {
	state *SharedState
}

func newFinanceView(state *SharedState) *financeView {
	return &financeView{state: state}
}

func (v *financeView) ID() ViewID               { return ViewFinance }
func (v *financeView) Title() string            { return "Financial Buddy" }
func (v *financeView) ShortHelp() []key.Binding { return nil }
func (v *financeView) Init() tea.Cmd            { return nil }

func (v *financeView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return v, nil
}

func (v *financeView) View() string {
	return formatter.FormatFinance(domain.FinanceOffers)
}
