package tui

import (
	"github.com/theirongolddev/debtburn/internal/cli"
	"github.com/theirongolddev/debtburn/internal/engine"
	"github.com/theirongolddev/debtburn/internal/tui/components"
)

func (a App) renderCompareTab(cw int) string {
	return components.ContentCard("Strategies", compareTable(a.compare, a.input.Strategy.Name()), cw)
}

// compareTable renders one row per strategy with savings against the most
// expensive one. The active strategy is marked.
func compareTable(sums []engine.Summary, active string) string {
	if len(sums) == 0 {
		return ""
	}
	worst := sums[0]
	for _, s := range sums[1:] {
		if s.TotalInterest.GreaterThan(worst.TotalInterest) {
			worst = s
		}
	}
	best, _ := engine.Cheapest(sums)

	rows := make([][]string, 0, len(sums))
	for _, s := range sums {
		name := s.Strategy
		if name == active {
			name = "▸ " + name
		}
		if s.Strategy == best.Strategy {
			name += " ★"
		}
		rows = append(rows, []string{
			name,
			cli.FormatMonths(s.Periods),
			cli.FormatMoney(s.TotalInterest),
			cli.FormatMoney(s.TotalPaid),
			cli.FormatSavings(s.TotalInterest, worst.TotalInterest),
		})
	}
	return cli.RenderTable(cli.Table{
		Headers: []string{"Strategy", "Months", "Interest", "Total Paid", "Saves"},
		Rows:    rows,
	})
}
