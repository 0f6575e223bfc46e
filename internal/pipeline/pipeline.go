// Package pipeline turns a saved scenario into a computed payment plan and
// flattens it into the month-by-month rows the CLI, TUI and HTTP API render.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/theirongolddev/debtburn/internal/config"
	"github.com/theirongolddev/debtburn/internal/engine"
	"github.com/theirongolddev/debtburn/internal/model"
	"github.com/theirongolddev/debtburn/internal/money"
	"github.com/theirongolddev/debtburn/internal/store"
)

// Input is everything needed to compute one plan.
type Input struct {
	Loans        []model.Loan
	Contribution decimal.Decimal
	Start        time.Time
	Years        int
	Strategy     engine.Strategy
	Fund         *store.Fund
	MaxPeriods   int // 0 keeps the engine default
	Logger       *zap.Logger
}

// LoanPayment is one loan's line in a month.
type LoanPayment struct {
	Name       string          `json:"name"`
	Paid       decimal.Decimal `json:"paid"`
	Remaining  decimal.Decimal `json:"remaining"`
	Multiplier int             `json:"multiplier"`
}

// FundPayment is the emergency fund's line in a month.
type FundPayment struct {
	Paid      decimal.Decimal `json:"paid"`
	Remaining decimal.Decimal `json:"remaining"`
}

// Month is one period of the schedule.
type Month struct {
	Date      time.Time       `json:"date"`
	Payments  []LoanPayment   `json:"payments"`
	Fund      *FundPayment    `json:"fund,omitempty"`
	Paid      decimal.Decimal `json:"paid"`
	Remaining decimal.Decimal `json:"remaining"`
}

// Result is a computed plan ready for rendering.
type Result struct {
	Summary  engine.Summary  `json:"summary"`
	Minimum  decimal.Decimal `json:"minimum"`
	Months   []Month         `json:"months"`
	DebtFree time.Time       `json:"debt_free"` // first day of the final month
}

// Record returns the history entry for this result.
func (r *Result) Record(at time.Time) store.Run {
	return store.Run{
		CreatedAt:    at,
		Strategy:     r.Summary.Strategy,
		Contribution: r.Summary.Contribution,
		Loans:        len(r.Summary.Loans),
		Months:       r.Summary.Periods,
		TotalPaid:    r.Summary.TotalPaid,
		Interest:     r.Summary.TotalInterest,
	}
}

// ErrNoLoans is returned when there is nothing to plan.
var ErrNoLoans = errors.New("no loans to plan")

// Run builds and simulates the plan described by in.
func Run(in Input) (*Result, error) {
	if len(in.Loans) == 0 {
		return nil, ErrNoLoans
	}
	if in.Strategy == nil {
		in.Strategy = engine.Avalanche
	}

	opts, err := in.options()
	if err != nil {
		return nil, err
	}
	plan, err := engine.NewPaymentPlan(in.Loans, in.Strategy, in.Years, opts...)
	if err != nil {
		return nil, err
	}
	minimum, err := plan.MinimumRequiredPayment()
	if err != nil {
		return nil, err
	}
	if err := plan.CreatePlan(in.Contribution); err != nil {
		return nil, err
	}

	res := &Result{
		Summary: engine.Summarize(plan, in.Contribution),
		Minimum: minimum,
		Months:  Flatten(plan, in.Start),
	}
	if n := len(res.Months); n > 0 {
		res.DebtFree = res.Months[n-1].Date
	}
	return res, nil
}

// Compare runs every strategy over in's loans. in.Strategy is ignored.
func Compare(in Input) ([]engine.Summary, error) {
	if len(in.Loans) == 0 {
		return nil, ErrNoLoans
	}
	var opts []engine.Option
	if in.MaxPeriods > 0 {
		opts = append(opts, engine.WithMaxPeriods(in.MaxPeriods))
	}
	if in.Logger != nil {
		opts = append(opts, engine.WithLogger(in.Logger))
	}
	fund, err := in.fund()
	if err != nil {
		return nil, err
	}
	return engine.Compare(in.Loans, in.Contribution, in.Years, fund, opts...)
}

// Minimum returns the smallest contribution that covers every loan's first
// payment.
func Minimum(loans []model.Loan, years int) (decimal.Decimal, error) {
	plan, err := engine.NewPaymentPlan(loans, engine.Avalanche, years)
	if err != nil {
		return money.Zero, err
	}
	return plan.MinimumRequiredPayment()
}

// Flatten walks plan's series from start into ordered rows. Loans keep plan
// order and finished loans are left out of later months.
func Flatten(plan *engine.PaymentPlan, start time.Time) []Month {
	var order []string
	for _, r := range plan.LoanRepayments() {
		order = append(order, r.Loan().Name())
	}

	var fund []model.EmergencyFundPayment
	if f := plan.EmergencyFund(); f != nil {
		fund = f.Payments()
	}

	var months []Month
	i := 0
	for date, row := range plan.Series(start) {
		m := Month{Date: date, Paid: money.Zero, Remaining: money.Zero}
		for _, name := range order {
			p, ok := row[name]
			if !ok {
				continue
			}
			m.Payments = append(m.Payments, LoanPayment{
				Name:       name,
				Paid:       p.Paid(),
				Remaining:  p.Remaining(),
				Multiplier: p.Multiplier(),
			})
			m.Paid = m.Paid.Add(p.Paid())
			m.Remaining = m.Remaining.Add(p.Remaining())
		}
		if i < len(fund) {
			m.Fund = &FundPayment{Paid: fund[i].Payment(), Remaining: fund[i].AmountRemaining()}
		}
		months = append(months, m)
		i++
	}
	return months
}

func (in Input) options() ([]engine.Option, error) {
	var opts []engine.Option
	fund, err := in.fund()
	if err != nil {
		return nil, err
	}
	if fund != nil {
		opts = append(opts, engine.WithEmergencyFund(fund))
	}
	if in.MaxPeriods > 0 {
		opts = append(opts, engine.WithMaxPeriods(in.MaxPeriods))
	}
	if in.Logger != nil {
		opts = append(opts, engine.WithLogger(in.Logger))
	}
	return opts, nil
}

func (in Input) fund() (*engine.EmergencyFund, error) {
	if in.Fund == nil {
		return nil, nil
	}
	f, err := engine.NewEmergencyFund(in.Fund.Target, in.Fund.Percentage)
	if err != nil {
		return nil, fmt.Errorf("emergency fund: %w", err)
	}
	return f, nil
}

// FundFromConfig returns the configured default fund, or nil.
func FundFromConfig(cfg config.Config) *store.Fund {
	if cfg.EmergencyFund.Target == nil {
		return nil
	}
	return &store.Fund{
		Target:     money.FromFloat(*cfg.EmergencyFund.Target),
		Percentage: decimal.NewFromFloat(cfg.EmergencyFund.Percentage),
	}
}

// FromScenario fills an Input from a saved scenario and configuration
// defaults. A scenario's own strategy and fund win over the config.
func FromScenario(s store.Scenario, cfg config.Config) (Input, error) {
	name := cfg.Plan.Strategy
	if s.Strategy != "" {
		name = s.Strategy
	}
	strategy, err := engine.StrategyByName(name)
	if err != nil {
		return Input{}, err
	}

	in := Input{
		Loans:        s.Loans,
		Contribution: s.TotalMonthlyPayment,
		Start:        s.StartingMonth,
		Years:        cfg.Plan.Years,
		Strategy:     strategy,
		Fund:         s.EmergencyFund,
		MaxPeriods:   cfg.Plan.MaxPeriods,
	}
	if in.Fund == nil {
		in.Fund = FundFromConfig(cfg)
	}
	if in.Start.IsZero() {
		now := time.Now()
		in.Start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return in, nil
}
