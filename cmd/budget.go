package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/debtburn/internal/cli"
	"github.com/theirongolddev/debtburn/internal/money"
	"github.com/theirongolddev/debtburn/internal/pipeline"
	"github.com/theirongolddev/debtburn/internal/store"
)

var flagBudgetStart string

var budgetCmd = &cobra.Command{
	Use:   "budget [AMOUNT]",
	Short: "Show or set the monthly contribution and starting month",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBudget,
}

func init() {
	budgetCmd.Flags().StringVar(&flagBudgetStart, "start", "", "First month of the plan (YYYY-MM)")
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(c *cobra.Command, args []string) error {
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

	changed := false
	if len(args) == 1 {
		amount, err := money.Parse(args[0])
		if err != nil {
			return err
		}
		if err := money.MustBeGreaterThan0("Monthly contribution", amount); err != nil {
			return err
		}
		sc.TotalMonthlyPayment = money.Round(amount)
		changed = true
	}
	if c.Flags().Changed("start") {
		start, err := cli.ParseMonth(flagBudgetStart)
		if err != nil {
			return err
		}
		sc.StartingMonth = start
		changed = true
	}

	if changed {
		if err := store.Save(ctx, e.store, sc); err != nil {
			return err
		}
		progress("Budget saved")
	}

	pairs := [][2]string{
		{"Monthly contribution", cli.FormatMoney(sc.TotalMonthlyPayment)},
	}
	if sc.StartingMonth.IsZero() {
		pairs = append(pairs, [2]string{"Starting month", "current month"})
	} else {
		pairs = append(pairs, [2]string{"Starting month", cli.FormatMonth(sc.StartingMonth)})
	}
	if len(sc.Loans) > 0 {
		minimum, err := pipeline.Minimum(sc.Loans, e.cfg.Plan.Years)
		if err != nil {
			return err
		}
		pairs = append(pairs, [2]string{"Minimum required", cli.FormatMoney(minimum)})
		if sc.TotalMonthlyPayment.LessThan(minimum) {
			pairs = append(pairs, [2]string{"", cli.WarnStyle.Render("below the minimum, plans will fail")})
		}
	}

	fmt.Println()
	fmt.Print(cli.RenderKeyValues(pairs))
	return nil
}
