package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/debtburn/internal/cli"
	"github.com/theirongolddev/debtburn/internal/tui/components"
	"github.com/theirongolddev/debtburn/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	res := a.result
	s := res.Summary

	metrics := []components.Metric{
		{Label: "Total Debt", Value: cli.FormatMoney(s.TotalPrincipal), Note: fmt.Sprintf("%d loans", len(s.Loans)), Color: t.Debt},
		{Label: "Debt Free", Value: cli.FormatMonth(res.DebtFree), Note: cli.FormatMonths(s.Periods)},
		{Label: "Interest", Value: cli.FormatMoney(s.TotalInterest), Note: "over the plan", Color: t.Interest},
		{Label: "Monthly", Value: cli.FormatMoney(s.Contribution), Note: "min " + cli.FormatMoney(res.Minimum)},
	}
	if s.HasFund {
		note := "in progress"
		if s.FundPaidOff {
			note = "funded in " + cli.FormatMonths(s.FundMonths)
		}
		metrics = append(metrics, components.Metric{
			Label: "Emergency Fund", Value: cli.FormatMoney(s.FundContributed), Note: note, Color: t.Fund,
		})
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	values := make([]float64, 0, len(res.Months)+1)
	labels := make([]string, 0, len(res.Months)+1)
	values = append(values, s.TotalPrincipal.InexactFloat64())
	labels = append(labels, "start")
	for _, m := range res.Months {
		values = append(values, m.Remaining.InexactFloat64())
		labels = append(labels, m.Date.Format("Jan 06"))
	}
	chartW := components.CardInnerWidth(cw)
	chart := components.BarChart(values, labels, t.Debt, chartW, 10)
	b.WriteString(components.ContentCard("Remaining Balance", chart, cw))
	b.WriteString("\n")

	if !s.Unallocated.IsZero() {
		b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Render(
			fmt.Sprintf(" %s of the final month's contribution is left over.", cli.FormatMoney(s.Unallocated))))
	}
	return b.String()
}
