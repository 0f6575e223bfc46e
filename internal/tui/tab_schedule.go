package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/debtburn/internal/cli"
	"github.com/theirongolddev/debtburn/internal/tui/components"
	"github.com/theirongolddev/debtburn/internal/tui/theme"
)

const (
	monthColW = 10
	moneyColW = 13
)

func (a App) renderScheduleTab(cw, h int) string {
	t := theme.Active
	res := a.result

	var names []string
	for _, l := range res.Summary.Loans {
		names = append(names, l.Name)
	}
	hasFund := res.Summary.HasFund

	// Month, loans..., [fund], paid, remaining
	fixed := monthColW + 2*moneyColW
	if hasFund {
		fixed += moneyColW
	}
	maxLoans := max((components.CardInnerWidth(cw)-fixed)/moneyColW, 0)
	hidden := 0
	if len(names) > maxLoans {
		hidden = len(names) - maxLoans
		names = names[:maxLoans]
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	boostStyle := lipgloss.NewStyle().Foreground(t.Paid)
	fundStyle := lipgloss.NewStyle().Foreground(t.Fund)

	var b strings.Builder
	header := fmt.Sprintf("%-*s", monthColW, "Month")
	for _, n := range names {
		header += fmt.Sprintf("%*s", moneyColW, truncStr(n, moneyColW-1))
	}
	if hasFund {
		header += fmt.Sprintf("%*s", moneyColW, "Fund")
	}
	header += fmt.Sprintf("%*s%*s", moneyColW, "Paid", moneyColW, "Remaining")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	visible := max(h-2, 1)
	end := min(a.scroll+visible, len(res.Months))
	for _, m := range res.Months[a.scroll:end] {
		b.WriteString(rowStyle.Render(fmt.Sprintf("%-*s", monthColW, cli.FormatMonth(m.Date))))
		for _, n := range names {
			cell := "·"
			style := dimStyle
			for _, p := range m.Payments {
				if p.Name != n {
					continue
				}
				cell = cli.FormatMoney(p.Paid)
				style = rowStyle
				if p.Multiplier > 1 {
					style = boostStyle
				}
			}
			b.WriteString(style.Render(fmt.Sprintf("%*s", moneyColW, cell)))
		}
		if hasFund {
			cell := "·"
			if m.Fund != nil {
				cell = cli.FormatMoney(m.Fund.Paid)
			}
			b.WriteString(fundStyle.Render(fmt.Sprintf("%*s", moneyColW, cell)))
		}
		b.WriteString(rowStyle.Render(fmt.Sprintf("%*s%*s", moneyColW, cli.FormatMoney(m.Paid), moneyColW, cli.FormatMoney(m.Remaining))))
		b.WriteString("\n")
	}

	footer := fmt.Sprintf("rows %d-%d of %d", a.scroll+1, end, len(res.Months))
	if hidden > 0 {
		footer += fmt.Sprintf(" · %d loans hidden, widen the terminal", hidden)
	}
	b.WriteString(dimStyle.Render(footer))

	return components.ContentCard("", b.String(), cw)
}
