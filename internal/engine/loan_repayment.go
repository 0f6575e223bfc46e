package engine

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/debtburn/internal/interest"
	"github.com/theirongolddev/debtburn/internal/model"
	"github.com/theirongolddev/debtburn/internal/money"
)

// LoanRepayment tracks the payments made against one loan until payoff.
// Its history is append-only and only MakePayment mutates it.
type LoanRepayment struct {
	loan     model.Loan
	payments []model.Payment
	paidOff  bool
}

// NewLoanRepayment starts an open repayment for loan.
func NewLoanRepayment(loan model.Loan) *LoanRepayment {
	return &LoanRepayment{loan: loan}
}

// Loan returns the loan being repaid.
func (r *LoanRepayment) Loan() model.Loan { return r.loan }

// Payments returns a copy of the payment history in chronological order.
func (r *LoanRepayment) Payments() []model.Payment { return slices.Clone(r.payments) }

// IsPaidOff reports whether the final payment has been made.
func (r *LoanRepayment) IsPaidOff() bool { return r.paidOff }

// Remaining is the balance after the last payment, or the original principal.
func (r *LoanRepayment) Remaining() decimal.Decimal {
	if len(r.payments) == 0 {
		return r.loan.Principal()
	}
	return r.payments[len(r.payments)-1].Remaining()
}

// TotalPaid sums every payment made so far.
func (r *LoanRepayment) TotalPaid() decimal.Decimal {
	total := money.Zero
	for _, p := range r.payments {
		total = total.Add(p.Paid())
	}
	return total
}

// Minimum returns the payment needed this period to amortize the current
// balance over years, floored at the loan's minimum.
func (r *LoanRepayment) Minimum(years int) (decimal.Decimal, error) {
	return interest.MinimumMonthlyPaymentWithinPeriod(r.Remaining(), r.loan.Interest(), r.loan.Minimum(), years)
}

// MakePayment accrues one month of interest and applies amount. It returns
// the part of amount that was not needed: the whole amount when the loan is
// already paid off, the excess when this payment closes the loan, else zero.
func (r *LoanRepayment) MakePayment(amount decimal.Decimal, multiplier int) (decimal.Decimal, error) {
	if err := money.MustBeGreaterThan0("Amount", amount); err != nil {
		return money.Zero, err
	}
	if r.paidOff {
		return amount, nil
	}

	balance := money.Round(interest.PrincipalPlusMonthlyInterest(r.Remaining(), r.loan.Interest()))
	if amount.LessThan(balance) {
		p, err := model.NewPayment(amount, balance.Sub(amount), multiplier)
		if err != nil {
			return money.Zero, err
		}
		r.payments = append(r.payments, p)
		return money.Zero, nil
	}

	p, err := model.NewPayment(balance, money.Zero, multiplier)
	if err != nil {
		return money.Zero, err
	}
	r.payments = append(r.payments, p)
	r.paidOff = true
	return amount.Sub(balance), nil
}
