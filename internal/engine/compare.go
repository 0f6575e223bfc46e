package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/debtburn/internal/model"
)

// Compare runs every built-in strategy over the same loans and contribution
// concurrently. Each run gets its own PaymentPlan and, when fund is non-nil,
// its own unfunded copy of fund; fund itself is never paid into. opts must
// not include WithEmergencyFund.
func Compare(loans []model.Loan, contribution decimal.Decimal, years int, fund *EmergencyFund, opts ...Option) ([]Summary, error) {
	strategies := Strategies()
	summaries := make([]Summary, len(strategies))
	errs := make([]error, len(strategies))

	var wg sync.WaitGroup
	for i, strategy := range strategies {
		wg.Add(1)
		go func() {
			defer wg.Done()

			planOpts := opts
			if fund != nil {
				planOpts = append(append([]Option{}, opts...), WithEmergencyFund(fund.fresh()))
			}
			plan, err := NewPaymentPlan(loans, strategy, years, planOpts...)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", strategy.Name(), err)
				return
			}
			if err := plan.CreatePlan(contribution); err != nil {
				errs[i] = fmt.Errorf("%s: %w", strategy.Name(), err)
				return
			}
			summaries[i] = Summarize(plan, contribution)
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return summaries, nil
}

// Cheapest returns the summary with the lowest total interest, preferring
// fewer periods on ties.
func Cheapest(summaries []Summary) (Summary, bool) {
	if len(summaries) == 0 {
		return Summary{}, false
	}
	best := summaries[0]
	for _, s := range summaries[1:] {
		c := s.TotalInterest.Cmp(best.TotalInterest)
		if c < 0 || (c == 0 && s.Periods < best.Periods) {
			best = s
		}
	}
	return best, true
}
