package engine

import (
	"iter"
	"time"

	"github.com/theirongolddev/debtburn/internal/model"
)

// Series yields one entry per period, keyed by the first day of each month
// starting at start's month, mapping loan name to that period's payment.
// Loans that finished earlier have no entry. The sequence is derived from the
// recorded histories on every iteration, so it can be ranged over repeatedly.
func (p *PaymentPlan) Series(start time.Time) iter.Seq2[time.Time, map[string]model.Payment] {
	first := monthStart(start)
	return func(yield func(time.Time, map[string]model.Payment) bool) {
		periods := p.Periods()
		for i := 0; i < periods; i++ {
			row := make(map[string]model.Payment, len(p.repayments))
			for _, r := range p.repayments {
				if i < len(r.payments) {
					row[r.loan.Name()] = r.payments[i]
				}
			}
			if !yield(first.AddDate(0, i, 0), row) {
				return
			}
		}
	}
}

// FundSeries yields the emergency fund contributions by month. It is empty
// when the plan has no fund.
func (p *PaymentPlan) FundSeries(start time.Time) iter.Seq2[time.Time, model.EmergencyFundPayment] {
	first := monthStart(start)
	return func(yield func(time.Time, model.EmergencyFundPayment) bool) {
		if p.fund == nil {
			return
		}
		for i, payment := range p.fund.payments {
			if !yield(first.AddDate(0, i, 0), payment) {
				return
			}
		}
	}
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
