package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/debtburn/internal/cli"
	"github.com/theirongolddev/debtburn/internal/engine"
	"github.com/theirongolddev/debtburn/internal/money"
	"github.com/theirongolddev/debtburn/internal/pipeline"
	"github.com/theirongolddev/debtburn/internal/store"
)

var (
	flagContribution string
	flagStrategy     string
	flagYears        int
	flagStart        string
	flagFundTarget   string
	flagFundPercent  float64
	flagRows         int
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Simulate the saved scenario and print the repayment schedule",
	RunE:  runPlan,
}

func init() {
	addPlanFlags(planCmd)
	rootCmd.AddCommand(planCmd)
}

// addPlanFlags registers the scenario override flags on c.
func addPlanFlags(c *cobra.Command) {
	c.Flags().StringVarP(&flagContribution, "contribution", "c", "", "Monthly contribution (overrides the saved budget)")
	c.Flags().StringVarP(&flagStrategy, "strategy", "s", "", "avalanche, snowball or double-double")
	c.Flags().IntVarP(&flagYears, "years", "y", 0, "Horizon in years used for minimum payments")
	c.Flags().StringVar(&flagStart, "start", "", "First month of the plan (YYYY-MM)")
	c.Flags().StringVar(&flagFundTarget, "fund-target", "", "Emergency fund target amount")
	c.Flags().Float64Var(&flagFundPercent, "fund-percent", 50, "Share of surplus sent to the emergency fund, in percent")
	c.Flags().IntVar(&flagRows, "rows", 24, "Schedule rows to print (0 for all)")
}

// planInput merges the saved scenario, config defaults and flag overrides.
func planInput(c *cobra.Command, e *env, sc store.Scenario) (pipeline.Input, error) {
	in, err := pipeline.FromScenario(sc, e.cfg)
	if err != nil {
		return pipeline.Input{}, err
	}
	in.Logger = e.log

	flags := c.Flags()
	if flags.Changed("contribution") {
		if in.Contribution, err = money.Parse(flagContribution); err != nil {
			return pipeline.Input{}, err
		}
	}
	if flags.Changed("strategy") {
		if in.Strategy, err = engine.StrategyByName(flagStrategy); err != nil {
			return pipeline.Input{}, err
		}
	}
	if flags.Changed("years") {
		in.Years = flagYears
	}
	if flags.Changed("start") {
		if in.Start, err = cli.ParseMonth(flagStart); err != nil {
			return pipeline.Input{}, err
		}
	}
	if flags.Changed("fund-target") {
		target, err := money.Parse(flagFundTarget)
		if err != nil {
			return pipeline.Input{}, err
		}
		in.Fund = &store.Fund{Target: target, Percentage: decimal.NewFromFloat(flagFundPercent).Shift(-2)}
	} else if flags.Changed("fund-percent") && in.Fund != nil {
		fund := *in.Fund
		fund.Percentage = decimal.NewFromFloat(flagFundPercent).Shift(-2)
		in.Fund = &fund
	}
	return in, nil
}

func runPlan(c *cobra.Command, _ []string) error {
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
		fmt.Println("  Add one with `debtburn loan add NAME --principal 1000 --rate 10 --minimum 25`.")
		return nil
	}

	start := time.Now()
	res, err := pipeline.Run(in)
	if err != nil {
		var insufficient *engine.InsufficientContributionError
		if errors.As(err, &insufficient) {
			fmt.Fprintf(os.Stderr, "\n  Raise the budget with `debtburn budget %s`.\n\n", money.Format(insufficient.Minimum))
		}
		return err
	}
	e.log.Debug("plan computed",
		zap.String("strategy", in.Strategy.Name()),
		zap.Int("periods", res.Summary.Periods),
		zap.Duration("elapsed", time.Since(start)))

	if err := e.store.RecordRun(ctx, res.Record(time.Now())); err != nil {
		e.log.Warn("recording run", zap.Error(err))
	}

	printPlan(res, flagRows)
	return nil
}

func printPlan(res *pipeline.Result, rows int) {
	s := res.Summary

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DEBT PLAN  %s", s.Strategy)))
	fmt.Println()

	pairs := [][2]string{
		{"Monthly contribution", cli.FormatMoney(s.Contribution)},
		{"Minimum required", cli.FormatMoney(res.Minimum)},
		{"Debt free", fmt.Sprintf("%s (%s)", cli.FormatMonth(res.DebtFree), cli.FormatMonths(s.Periods))},
		{"Total paid", cli.FormatMoney(s.TotalPaid)},
		{"Total interest", cli.FormatMoney(s.TotalInterest)},
	}
	if s.HasFund {
		status := "in progress"
		if s.FundPaidOff {
			status = "funded after " + cli.FormatMonths(s.FundMonths)
		}
		pairs = append(pairs, [2]string{"Emergency fund",
			fmt.Sprintf("%s of %s, %s", cli.FormatMoney(s.FundContributed), cli.FormatMoney(s.FundTarget), status)})
	}
	if s.Unallocated.IsPositive() {
		pairs = append(pairs, [2]string{"Left over", cli.FormatMoney(s.Unallocated)})
	}
	fmt.Print(cli.RenderKeyValues(pairs))
	fmt.Println()

	fmt.Print(cli.RenderTable(loanTable(s)))
	fmt.Println()
	fmt.Print(cli.RenderTable(scheduleTable(res, rows)))
	if rows > 0 && len(res.Months) > rows {
		fmt.Printf("  ... %d more months (use --rows 0 to show all)\n", len(res.Months)-rows)
	}
}

func loanTable(s engine.Summary) cli.Table {
	var rows [][]string
	for _, l := range s.Loans {
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
		"Total", cli.FormatMoney(s.TotalPrincipal), "",
		cli.FormatMoney(s.TotalInterest), cli.FormatMoney(s.TotalPaid), cli.FormatMonths(s.Periods),
	})
	return cli.Table{
		Title:   "Loans (payoff order)",
		Headers: []string{"Loan", "Principal", "Rate", "Interest", "Total Paid", "Paid Off In"},
		Rows:    rows,
	}
}

func scheduleTable(res *pipeline.Result, limit int) cli.Table {
	months := res.Months
	if limit > 0 && len(months) > limit {
		months = months[:limit]
	}

	headers := []string{"Month", "Payments", "Paid", "Remaining"}
	if res.Summary.HasFund {
		headers = []string{"Month", "Payments", "Fund", "Paid", "Remaining"}
	}

	var rows [][]string
	for _, m := range months {
		var parts []string
		for _, p := range m.Payments {
			part := fmt.Sprintf("%s %s", p.Name, cli.FormatMoney(p.Paid))
			if p.Multiplier > 1 {
				part += fmt.Sprintf(" x%d", p.Multiplier)
			}
			parts = append(parts, part)
		}
		row := []string{cli.FormatMonth(m.Date), joinPayments(parts)}
		if res.Summary.HasFund {
			fund := "-"
			if m.Fund != nil {
				fund = cli.FormatMoney(m.Fund.Paid)
			}
			row = append(row, fund)
		}
		row = append(row, cli.FormatMoney(m.Paid), cli.FormatMoney(m.Remaining))
		rows = append(rows, row)
	}
	return cli.Table{Title: "Schedule", Headers: headers, Rows: rows}
}

func joinPayments(parts []string) string {
	if len(parts) == 0 {
		return "-"
	}
	if len(parts) > 2 {
		return strings.Join(parts[:2], ", ") + fmt.Sprintf(" +%d", len(parts)-2)
	}
	return strings.Join(parts, ", ")
}
