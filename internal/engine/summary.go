package engine

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/debtburn/internal/money"
)

// LoanSummary holds the totals of one loan's repayment.
type LoanSummary struct {
	Name         string          `json:"name"`
	Principal    decimal.Decimal `json:"principal"`
	Rate         decimal.Decimal `json:"rate"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	InterestPaid decimal.Decimal `json:"interest_paid"`
	Remaining    decimal.Decimal `json:"remaining"`
	PayoffMonth  int             `json:"payoff_month"` // 1-based period of the final payment, 0 while open
	Boosted      int             `json:"boosted"`      // payments recorded with a multiplier above 1
}

// Summary holds the totals the presentation layers display for a plan.
type Summary struct {
	Strategy       string          `json:"strategy"`
	Contribution   decimal.Decimal `json:"contribution"`
	Periods        int             `json:"periods"`
	TotalPrincipal decimal.Decimal `json:"total_principal"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	Loans          []LoanSummary   `json:"loans"`

	HasFund         bool            `json:"has_fund"`
	FundTarget      decimal.Decimal `json:"fund_target"`
	FundContributed decimal.Decimal `json:"fund_contributed"`
	FundMonths      int             `json:"fund_months"`
	FundPaidOff     bool            `json:"fund_paid_off"`

	// Unallocated is surplus left after the last loan closed in the final
	// period.
	Unallocated decimal.Decimal `json:"unallocated"`
}

// Summarize derives totals from a plan's payment histories.
func Summarize(p *PaymentPlan, contribution decimal.Decimal) Summary {
	contribution = money.Round(contribution)
	s := Summary{
		Strategy:       p.strategy.Name(),
		Contribution:   contribution,
		Periods:        p.Periods(),
		TotalPrincipal: money.Zero,
		TotalPaid:      money.Zero,
		TotalInterest:  money.Zero,
		Unallocated:    money.Zero,
	}

	for _, r := range p.repayments {
		ls := LoanSummary{
			Name:      r.loan.Name(),
			Principal: r.loan.Principal(),
			Rate:      r.loan.Interest(),
			TotalPaid: r.TotalPaid(),
			Remaining: r.Remaining(),
		}
		// paid = principal - remaining + interest
		ls.InterestPaid = ls.TotalPaid.Sub(ls.Principal).Add(ls.Remaining)
		if r.IsPaidOff() {
			ls.PayoffMonth = len(r.payments)
		}
		for _, pay := range r.payments {
			if pay.Multiplier() > 1 {
				ls.Boosted++
			}
		}

		s.TotalPrincipal = s.TotalPrincipal.Add(ls.Principal)
		s.TotalPaid = s.TotalPaid.Add(ls.TotalPaid)
		s.TotalInterest = s.TotalInterest.Add(ls.InterestPaid)
		s.Loans = append(s.Loans, ls)
	}

	if p.fund != nil {
		s.HasFund = true
		s.FundTarget = p.fund.Target()
		s.FundContributed = p.fund.Contributed()
		s.FundPaidOff = p.fund.IsPaidOff()
		if s.FundPaidOff {
			s.FundMonths = len(p.fund.payments)
		}
	}

	if s.Periods > 0 {
		budget := contribution.Mul(decimal.NewFromInt(int64(s.Periods)))
		s.Unallocated = budget.Sub(s.TotalPaid).Sub(s.FundContributed)
	}
	return s
}
