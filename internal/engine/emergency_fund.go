package engine

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/debtburn/internal/model"
	"github.com/theirongolddev/debtburn/internal/money"
)

// EmergencyFund is a savings goal funded from a share of each period's
// surplus before that surplus reaches the loans.
type EmergencyFund struct {
	target     decimal.Decimal
	percentage decimal.Decimal
	payments   []model.EmergencyFundPayment
	paidOff    bool
}

// NewEmergencyFund builds a fund with a positive target that takes
// percentageOfBonusFunds (between 0 and 1) of every period's surplus.
func NewEmergencyFund(target, percentageOfBonusFunds decimal.Decimal) (*EmergencyFund, error) {
	if err := money.MustBeGreaterThan0("Target amount", money.Round(target)); err != nil {
		return nil, err
	}
	if err := money.MustBeBetween("Percentage of bonus funds", percentageOfBonusFunds, money.Zero, money.One); err != nil {
		return nil, err
	}
	return &EmergencyFund{target: money.Round(target), percentage: percentageOfBonusFunds}, nil
}

// Target is the amount the fund is saving toward.
func (f *EmergencyFund) Target() decimal.Decimal { return f.target }

// Percentage is the share of surplus money directed to the fund.
func (f *EmergencyFund) Percentage() decimal.Decimal { return f.percentage }

// Payments returns a copy of the contribution history.
func (f *EmergencyFund) Payments() []model.EmergencyFundPayment { return slices.Clone(f.payments) }

// IsPaidOff reports whether the target has been reached.
func (f *EmergencyFund) IsPaidOff() bool { return f.paidOff }

// AmountRemaining is what is still needed to reach the target.
func (f *EmergencyFund) AmountRemaining() decimal.Decimal {
	if len(f.payments) == 0 {
		return f.target
	}
	return f.payments[len(f.payments)-1].AmountRemaining()
}

// Contributed sums every payment made so far.
func (f *EmergencyFund) Contributed() decimal.Decimal {
	total := money.Zero
	for _, p := range f.payments {
		total = total.Add(p.Payment())
	}
	return total
}

// AddPayment applies amount to the fund and returns what it did not need.
func (f *EmergencyFund) AddPayment(amount decimal.Decimal) (decimal.Decimal, error) {
	if err := money.MustBeGreaterThan0("Amount", amount); err != nil {
		return money.Zero, err
	}
	if f.paidOff {
		return amount, nil
	}

	remaining := f.AmountRemaining()
	if amount.LessThan(remaining) {
		p, err := model.NewEmergencyFundPayment(amount, remaining.Sub(amount))
		if err != nil {
			return money.Zero, err
		}
		f.payments = append(f.payments, p)
		return money.Zero, nil
	}

	p, err := model.NewEmergencyFundPayment(remaining, money.Zero)
	if err != nil {
		return money.Zero, err
	}
	f.payments = append(f.payments, p)
	f.paidOff = true
	return amount.Sub(remaining), nil
}

// fresh returns an unfunded copy with the same settings.
func (f *EmergencyFund) fresh() *EmergencyFund {
	return &EmergencyFund{target: f.target, percentage: f.percentage}
}
