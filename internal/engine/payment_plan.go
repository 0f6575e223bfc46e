// Package engine runs the month-by-month debt repayment simulation: it
// accrues interest, pays every open loan its minimum, sends a share of the
// surplus to an optional emergency fund and cascades the rest across loans in
// strategy order until every loan is paid off.
//
// A PaymentPlan is single-threaded and owns its LoanRepayment and
// EmergencyFund values; concurrent simulations must build their own plans.
package engine

import (
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/theirongolddev/debtburn/internal/model"
	"github.com/theirongolddev/debtburn/internal/money"
)

const monthsPerYear = 12

// MaxYears bounds the amortization horizon.
const MaxYears = 100

// ValidateYears checks an amortization horizon.
func ValidateYears(years int) error {
	if err := money.MustBePositiveInt("Years", years); err != nil {
		return err
	}
	return money.MustBeAtMostInt("Years", years, MaxYears)
}

// PaymentPlan orchestrates the repayment of a set of loans.
type PaymentPlan struct {
	repayments []*LoanRepayment
	strategy   Strategy
	years      int
	fund       *EmergencyFund
	maxPeriods int
	logger     *zap.Logger
}

// Option configures a PaymentPlan.
type Option func(*PaymentPlan)

// WithEmergencyFund funds f from the surplus before loans. The plan takes
// ownership of f.
func WithEmergencyFund(f *EmergencyFund) Option {
	return func(p *PaymentPlan) { p.fund = f }
}

// WithMaxPeriods overrides the simulation ceiling (years*12*2 by default).
// Periods in which the emergency fund absorbs surplus do not count toward it.
func WithMaxPeriods(n int) Option {
	return func(p *PaymentPlan) { p.maxPeriods = n }
}

// WithLogger sets the logger used for plan diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(p *PaymentPlan) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPaymentPlan orders loans once with strategy and wraps each in a
// LoanRepayment. years is the amortization horizon used for minimum payments;
// it is not a cap on the simulation length.
func NewPaymentPlan(loans []model.Loan, strategy Strategy, years int, opts ...Option) (*PaymentPlan, error) {
	if err := ValidateYears(years); err != nil {
		return nil, err
	}
	if strategy == nil {
		return nil, &ValidationError{Field: "Strategy", Value: "<nil>", Reason: "cannot be empty"}
	}

	seen := make(map[string]bool, len(loans))
	for _, l := range loans {
		if seen[l.Name()] {
			return nil, &ValidationError{Field: "Name", Value: strconv.Quote(l.Name()), Reason: "cannot appear more than once in a plan"}
		}
		seen[l.Name()] = true
	}

	p := &PaymentPlan{
		strategy:   strategy,
		years:      years,
		maxPeriods: years * monthsPerYear * 2,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := money.MustBePositiveInt("Max periods", p.maxPeriods); err != nil {
		return nil, err
	}

	for _, l := range strategy.Order(loans) {
		p.repayments = append(p.repayments, NewLoanRepayment(l))
	}
	return p, nil
}

// LoanRepayments returns the repayments in their fixed priority order.
func (p *PaymentPlan) LoanRepayments() []*LoanRepayment {
	out := make([]*LoanRepayment, len(p.repayments))
	copy(out, p.repayments)
	return out
}

// EmergencyFund returns the plan's fund, or nil.
func (p *PaymentPlan) EmergencyFund() *EmergencyFund { return p.fund }

// Strategy returns the ordering strategy.
func (p *PaymentPlan) Strategy() Strategy { return p.strategy }

// Years returns the amortization horizon.
func (p *PaymentPlan) Years() int { return p.years }

// Periods is the length of the longest repayment history.
func (p *PaymentPlan) Periods() int {
	n := 0
	for _, r := range p.repayments {
		n = max(n, len(r.payments))
	}
	return n
}

// MinimumRequiredPayment sums the current minimums of all open loans.
func (p *PaymentPlan) MinimumRequiredPayment() (decimal.Decimal, error) {
	total := money.Zero
	for _, r := range p.repayments {
		if r.IsPaidOff() {
			continue
		}
		m, err := r.Minimum(p.years)
		if err != nil {
			return money.Zero, err
		}
		total = total.Add(m)
	}
	return total, nil
}

// CreatePlan simulates monthly payments of contribution, rounded to cents,
// until every loan is paid off. It fails up front when contribution does not
// cover the minimum required payment, and with a NonConvergenceError when the
// period ceiling is reached.
func (p *PaymentPlan) CreatePlan(contribution decimal.Decimal) error {
	contribution = money.Round(contribution)
	if err := money.MustBeGreaterThan0("Contribution", contribution); err != nil {
		return err
	}
	if p.Periods() > 0 {
		return ErrPlanAlreadyCreated
	}

	minimum, err := p.MinimumRequiredPayment()
	if err != nil {
		return err
	}
	if contribution.LessThan(minimum) {
		return &InsufficientContributionError{Minimum: minimum, Given: contribution}
	}

	// Every fund-fed period adds at least a cent to a finite target, so
	// leaving them out of the count still terminates.
	counted := 0
	for !p.allPaidOff() {
		if counted >= p.maxPeriods {
			owed := p.owed()
			p.logger.Warn("payment plan did not converge",
				zap.String("strategy", p.strategy.Name()),
				zap.Int("max_periods", p.maxPeriods),
				zap.Int("periods", p.Periods()),
				zap.String("owed", money.Format(owed)),
			)
			return &NonConvergenceError{Periods: p.Periods(), Remaining: owed}
		}
		fundFed, err := p.advance(contribution)
		if err != nil {
			return err
		}
		if !fundFed {
			counted++
		}
	}

	p.logger.Debug("payment plan created",
		zap.String("strategy", p.strategy.Name()),
		zap.String("contribution", money.Format(contribution)),
		zap.Int("loans", len(p.repayments)),
		zap.Int("periods", p.Periods()),
	)
	return nil
}

// advance runs one period and reports whether the emergency fund took a
// share of the surplus.
func (p *PaymentPlan) advance(contribution decimal.Decimal) (bool, error) {
	minimum, err := p.MinimumRequiredPayment()
	if err != nil {
		return false, err
	}
	bonus := contribution.Sub(minimum)
	if bonus.IsNegative() {
		return false, &InsufficientContributionError{Minimum: minimum, Given: contribution}
	}

	fundFed := false
	if p.fund != nil && !p.fund.IsPaidOff() {
		share := money.Round(bonus.Mul(p.fund.Percentage()))
		if share.IsPositive() {
			leftover, err := p.fund.AddPayment(share)
			if err != nil {
				return false, err
			}
			bonus = bonus.Sub(share).Add(leftover)
			fundFed = true
		}
	}

	// Surplus cascades down the fixed order within the same period.
	for _, r := range p.repayments {
		if r.IsPaidOff() {
			continue
		}
		m, err := r.Minimum(p.years)
		if err != nil {
			return false, err
		}
		bonus, err = r.MakePayment(m.Add(bonus), p.strategy.Multiplier(bonus.IsPositive()))
		if err != nil {
			return false, err
		}
	}
	return fundFed, nil
}

func (p *PaymentPlan) allPaidOff() bool {
	for _, r := range p.repayments {
		if !r.IsPaidOff() {
			return false
		}
	}
	return true
}

func (p *PaymentPlan) owed() decimal.Decimal {
	total := money.Zero
	for _, r := range p.repayments {
		total = total.Add(r.Remaining())
	}
	return total
}
