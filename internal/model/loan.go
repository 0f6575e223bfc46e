// Package model defines the immutable value records of the repayment engine:
// loans and the per-period payments applied to loans and emergency funds.
package model

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/debtburn/internal/money"
)

// Loan is a single debt. It is immutable once constructed.
type Loan struct {
	name      string
	principal decimal.Decimal
	interest  decimal.Decimal
	minimum   decimal.Decimal
}

// NewLoan validates and builds a Loan. interest is an annual rate expressed
// as a fraction (0.1 = 10%). principal and minimum are rounded to cents
// before validation.
func NewLoan(name string, principal, interest, minimum decimal.Decimal) (Loan, error) {
	if err := money.MustNotBeBlank("Name", name); err != nil {
		return Loan{}, err
	}
	if err := money.MustBeGreaterThan0("Principal", money.Round(principal)); err != nil {
		return Loan{}, err
	}
	if err := money.MustBeGreaterThanOrEqualTo0("Interest", interest); err != nil {
		return Loan{}, err
	}
	if err := money.MustBeGreaterThan0("Minimum", money.Round(minimum)); err != nil {
		return Loan{}, err
	}

	return Loan{
		name:      name,
		principal: money.Round(principal),
		interest:  interest,
		minimum:   money.Round(minimum),
	}, nil
}

// Name returns the loan's identifier, unique within a plan.
func (l Loan) Name() string { return l.name }

// Principal returns the original balance.
func (l Loan) Principal() decimal.Decimal { return l.principal }

// Interest returns the annual interest rate as a fraction.
func (l Loan) Interest() decimal.Decimal { return l.interest }

// Minimum returns the lender's minimum monthly payment.
func (l Loan) Minimum() decimal.Decimal { return l.minimum }
