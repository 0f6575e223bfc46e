package tui

import (
	"strings"

	"github.com/theirongolddev/debtburn/internal/cli"
	"github.com/theirongolddev/debtburn/internal/tui/components"
)

func (a App) renderLoansTab(cw int) string {
	s := a.result.Summary

	labelW := 4
	for _, l := range s.Loans {
		labelW = max(labelW, len([]rune(l.Name)))
	}
	labelW = min(labelW, 20)
	barW := max(components.CardInnerWidth(cw)-labelW-8, 10)

	var bars strings.Builder
	rows := make([][]string, 0, len(s.Loans)+2)
	for _, l := range s.Loans {
		repaid := 1.0
		if l.Principal.IsPositive() {
			repaid = 1 - l.Remaining.Div(l.Principal).InexactFloat64()
		}
		bars.WriteString(components.PayoffBar(truncStr(l.Name, labelW), repaid, labelW, barW))
		bars.WriteString("\n")

		payoff := "open"
		if l.PayoffMonth > 0 {
			payoff = cli.FormatMonths(l.PayoffMonth)
		}
		rows = append(rows, []string{
			l.Name,
			cli.FormatMoney(l.Principal),
			cli.FormatRate(l.Rate),
			cli.FormatMoney(l.InterestPaid),
			cli.FormatMoney(l.TotalPaid),
			payoff,
		})
	}
	rows = append(rows, []string{cli.SeparatorRow}, []string{
		"Total",
		cli.FormatMoney(s.TotalPrincipal),
		"",
		cli.FormatMoney(s.TotalInterest),
		cli.FormatMoney(s.TotalPaid),
		cli.FormatMonths(s.Periods),
	})

	table := cli.RenderTable(cli.Table{
		Headers: []string{"Loan", "Principal", "Rate", "Interest", "Total Paid", "Paid Off In"},
		Rows:    rows,
	})

	return components.ContentCard("Payoff Order ("+s.Strategy+")", bars.String(), cw) + "\n" + table
}
