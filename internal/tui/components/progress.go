package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/debtburn/internal/tui/theme"
)

// PayoffBar renders a labeled bar for the repaid fraction of a balance.
func PayoffBar(label string, pct float64, labelW, barWidth int) string {
	t := theme.Active
	pct = min(max(pct, 0), 1)

	color := t.Debt
	switch {
	case pct >= 1:
		color = t.Paid
	case pct >= 0.5:
		color = t.Accent
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(barWidth, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	return lipgloss.NewStyle().Foreground(t.TextMuted).Render(fmt.Sprintf("%-*s", labelW, label)) +
		" " + bar.ViewAs(pct) + " " +
		lipgloss.NewStyle().Foreground(color).Bold(true).Render(fmt.Sprintf("%3.0f%%", pct*100))
}
