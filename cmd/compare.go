package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/debtburn/internal/cli"
	"github.com/theirongolddev/debtburn/internal/engine"
	"github.com/theirongolddev/debtburn/internal/pipeline"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare every strategy on the saved scenario",
	RunE:  runCompare,
}

func init() {
	addPlanFlags(compareCmd)
	rootCmd.AddCommand(compareCmd)
}

func runCompare(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	sc, err := loadScenario(ctx, e.store)
	if err != nil {
		return err
	}
	in, err := planInput(c, e, sc)
	if err != nil {
		return err
	}
	if len(in.Loans) == 0 {
		fmt.Println("\n  No loans saved yet.")
		return nil
	}

	sums, err := pipeline.Compare(in)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("STRATEGIES  %s/mo", cli.FormatMoney(in.Contribution))))
	fmt.Println()
	fmt.Print(cli.RenderTable(compareTable(sums)))

	if best, ok := engine.Cheapest(sums); ok {
		fmt.Printf("\n  %s\n", cli.GoodStyle.Render(fmt.Sprintf("%s pays the least interest (%s).",
			best.Strategy, cli.FormatMoney(best.TotalInterest))))
	}
	return nil
}

func compareTable(sums []engine.Summary) cli.Table {
	worst := sums[0]
	for _, s := range sums[1:] {
		if s.TotalInterest.GreaterThan(worst.TotalInterest) {
			worst = s
		}
	}

	rows := make([][]string, 0, len(sums))
	for _, s := range sums {
		months := cli.FormatMonths(s.Periods)
		if d := worst.Periods - s.Periods; d > 0 {
			months += fmt.Sprintf(" (-%d)", d)
		}
		rows = append(rows, []string{
			s.Strategy,
			months,
			cli.FormatMoney(s.TotalInterest),
			cli.FormatMoney(s.TotalPaid),
			cli.FormatSavings(s.TotalInterest, worst.TotalInterest),
		})
	}
	return cli.Table{
		Headers: []string{"Strategy", "Months", "Interest", "Total Paid", "vs Worst"},
		Rows:    rows,
	}
}
