package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/debtburn/internal/cli"
	"github.com/theirongolddev/debtburn/internal/model"
	"github.com/theirongolddev/debtburn/internal/money"
	"github.com/theirongolddev/debtburn/internal/store"
)

var (
	flagLoanPrincipal string
	flagLoanRate      float64
	flagLoanMinimum   string
)

var loanCmd = &cobra.Command{
	Use:     "loan",
	Aliases: []string{"loans"},
	Short:   "Manage the saved loans",
	RunE:    runLoanList,
}

var loanAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a loan",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoanAdd,
}

var loanListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved loans",
	RunE:  runLoanList,
}

var loanRmCmd = &cobra.Command{
	Use:     "rm NAME",
	Aliases: []string{"remove"},
	Short:   "Remove a loan",
	Args:    cobra.ExactArgs(1),
	RunE:    runLoanRm,
}

func init() {
	loanAddCmd.Flags().StringVar(&flagLoanPrincipal, "principal", "", "Outstanding balance")
	loanAddCmd.Flags().Float64Var(&flagLoanRate, "rate", 0, "Annual interest rate in percent, e.g. 7.25")
	loanAddCmd.Flags().StringVar(&flagLoanMinimum, "minimum", "", "Minimum monthly payment")
	_ = loanAddCmd.MarkFlagRequired("principal")
	_ = loanAddCmd.MarkFlagRequired("minimum")

	loanCmd.AddCommand(loanAddCmd, loanListCmd, loanRmCmd)
	rootCmd.AddCommand(loanCmd)
}

func runLoanAdd(c *cobra.Command, args []string) error {
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

	name := args[0]
	if slices.ContainsFunc(sc.Loans, func(l model.Loan) bool { return l.Name() == name }) {
		return fmt.Errorf("a loan named %q already exists", name)
	}

	principal, err := money.Parse(flagLoanPrincipal)
	if err != nil {
		return err
	}
	minimum, err := money.Parse(flagLoanMinimum)
	if err != nil {
		return err
	}
	rate := money.FromFloat(flagLoanRate).Shift(-2)

	loan, err := model.NewLoan(name, principal, rate, minimum)
	if err != nil {
		return err
	}
	sc.Loans = append(sc.Loans, loan)
	if err := store.Save(ctx, e.store, sc); err != nil {
		return err
	}

	progress("Added %s: %s at %s, minimum %s", name,
		cli.FormatMoney(loan.Principal()), cli.FormatRate(loan.Interest()), cli.FormatMoney(loan.Minimum()))
	return nil
}

func runLoanList(c *cobra.Command, _ []string) error {
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
	if len(sc.Loans) == 0 {
		fmt.Println("\n  No loans saved yet.")
		return nil
	}

	total := money.Zero
	totalMin := money.Zero
	rows := make([][]string, 0, len(sc.Loans)+2)
	for _, l := range sc.Loans {
		rows = append(rows, []string{
			l.Name(),
			cli.FormatMoney(l.Principal()),
			cli.FormatRate(l.Interest()),
			cli.FormatMoney(l.Minimum()),
		})
		total = total.Add(l.Principal())
		totalMin = totalMin.Add(l.Minimum())
	}
	rows = append(rows, []string{cli.SeparatorRow},
		[]string{"Total", cli.FormatMoney(total), "", cli.FormatMoney(totalMin)})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Loan", "Principal", "Rate", "Minimum"},
		Rows:    rows,
	}))
	return nil
}

func runLoanRm(c *cobra.Command, args []string) error {
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

	name := args[0]
	idx := slices.IndexFunc(sc.Loans, func(l model.Loan) bool { return l.Name() == name })
	if idx < 0 {
		return fmt.Errorf("no loan named %q", name)
	}
	sc.Loans = slices.Delete(sc.Loans, idx, idx+1)
	if err := store.Save(ctx, e.store, sc); err != nil {
		return err
	}

	progress("Removed %s", name)
	return nil
}
