package engine

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/debtburn/internal/money"
)

// ValidationError is returned when an entity would be built in an invalid
// state. It aliases the money package type so callers can match it from here.
type ValidationError = money.ValidationError

// ErrPlanAlreadyCreated is returned by CreatePlan on a plan that already has
// payment history.
var ErrPlanAlreadyCreated = errors.New("payment plan already created")

// InsufficientContributionError is returned when the monthly contribution
// does not cover the minimum payments of the open loans.
type InsufficientContributionError struct {
	Minimum decimal.Decimal
	Given   decimal.Decimal
}

func (e *InsufficientContributionError) Error() string {
	return fmt.Sprintf("Monthly contribution (%s) cannot be less than the minimum required payment of %s",
		money.Format(e.Given), money.Format(e.Minimum))
}

// NonConvergenceError is returned when the simulation exceeds its period
// ceiling with loans still open.
type NonConvergenceError struct {
	Periods   int
	Remaining decimal.Decimal
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("payment plan did not converge after %d periods (%s still owed)",
		e.Periods, money.Format(e.Remaining))
}
