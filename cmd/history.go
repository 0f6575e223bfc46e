package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/debtburn/internal/cli"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent plan runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "l", 20, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	runs, err := e.store.Runs(ctx, flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("\n  No plans recorded yet. Run `debtburn plan` first.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	interest := make([]float64, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Strategy,
			cli.FormatMoney(r.Contribution),
			fmt.Sprintf("%d", r.Loans),
			cli.FormatMonths(r.Months),
			cli.FormatMoney(r.Interest),
		})
		interest = append(interest, r.Interest.InexactFloat64())
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Recent plans",
		Headers: []string{"When", "Strategy", "Monthly", "Loans", "Months", "Interest"},
		Rows:    rows,
	}))

	// oldest first so the trend reads left to right
	slices.Reverse(interest)
	fmt.Printf("\n  Interest trend  %s\n", cli.RenderSparkline(interest))
	return nil
}
