// Package interest computes compounded balances and amortized payment amounts.
// All functions are pure.
package interest

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/debtburn/internal/money"
)

const monthsPerYear = 12

var twelve = decimal.NewFromInt(monthsPerYear)

// MonthlyRate converts an annual rate (0.1 = 10%) to its monthly equivalent.
func MonthlyRate(annualRate decimal.Decimal) decimal.Decimal {
	return annualRate.DivRound(twelve, money.RatePlaces)
}

// PrincipalPlusMonthlyInterest returns principal * (1 + annualRate/12).
// The result is not rounded.
func PrincipalPlusMonthlyInterest(principal, annualRate decimal.Decimal) decimal.Decimal {
	return principal.Mul(money.One.Add(MonthlyRate(annualRate)))
}

// LoanPaymentAmount returns the fixed payment that amortizes presentValue over
// numberOfPeriods at periodicRate: r*PV / (1 - (1+r)^-n). A zero rate
// degenerates to PV/n.
func LoanPaymentAmount(presentValue, periodicRate decimal.Decimal, numberOfPeriods int) (decimal.Decimal, error) {
	if err := money.MustBePositiveInt("Number of periods", numberOfPeriods); err != nil {
		return money.Zero, err
	}
	if err := money.MustBeGreaterThanOrEqualTo0("Periodic rate", periodicRate); err != nil {
		return money.Zero, err
	}

	n := decimal.NewFromInt(int64(numberOfPeriods))
	if periodicRate.IsZero() {
		return presentValue.DivRound(n, money.RatePlaces), nil
	}

	// Multiplying through by (1+r)^n avoids a negative power.
	factor := money.PowInt(money.One.Add(periodicRate), numberOfPeriods)
	numerator := presentValue.Mul(periodicRate).Mul(factor)
	return numerator.DivRound(factor.Sub(money.One), money.RatePlaces), nil
}

// MinimumMonthlyPaymentWithinPeriod returns the monthly payment needed to
// amortize principal over years, never below minimumPayment and never above
// principal plus one month of interest. The result is rounded to cents.
func MinimumMonthlyPaymentWithinPeriod(principal, annualRate, minimumPayment decimal.Decimal, years int) (decimal.Decimal, error) {
	if err := money.MustBePositiveInt("Years", years); err != nil {
		return money.Zero, err
	}

	amortized, err := LoanPaymentAmount(principal, MonthlyRate(annualRate), years*monthsPerYear)
	if err != nil {
		return money.Zero, err
	}

	payment := decimal.Max(amortized, minimumPayment)
	payment = decimal.Min(payment, PrincipalPlusMonthlyInterest(principal, annualRate))
	return money.Round(payment), nil
}
