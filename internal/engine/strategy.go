package engine

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/theirongolddev/debtburn/internal/model"
)

// Strategy decides the fixed order in which loans receive surplus money.
type Strategy interface {
	// Name is the configuration key of the strategy.
	Name() string
	// Order returns a new slice in priority order. The input is not modified.
	Order(loans []model.Loan) []model.Loan
	// Multiplier is recorded on a payment; boosted is true when the payment
	// carries surplus money beyond the loan's minimum.
	Multiplier(boosted bool) int
}

// Strategy names accepted by StrategyByName.
const (
	AvalancheName    = "avalanche"
	SnowballName     = "snowball"
	DoubleDoubleName = "double-double"
)

var (
	// Avalanche pays the highest interest rate first.
	Avalanche Strategy = avalanche{}
	// Snowball pays the smallest principal first.
	Snowball Strategy = snowball{}
	// DoubleDouble pays the highest rate first, smallest principal among
	// equal rates, and marks boosted payments with a multiplier of 2.
	DoubleDouble Strategy = doubleDouble{}
)

// Strategies returns every built-in strategy in display order.
func Strategies() []Strategy {
	return []Strategy{Avalanche, Snowball, DoubleDouble}
}

// StrategyByName resolves a configured strategy name.
func StrategyByName(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case AvalancheName:
		return Avalanche, nil
	case SnowballName:
		return Snowball, nil
	case DoubleDoubleName, "doubledouble", "double":
		return DoubleDouble, nil
	}
	return nil, &ValidationError{
		Field:  "Strategy",
		Value:  strconv.Quote(name),
		Reason: fmt.Sprintf("cannot be anything other than %s, %s or %s", AvalancheName, SnowballName, DoubleDoubleName),
	}
}

type avalanche struct{}

func (avalanche) Name() string { return AvalancheName }

func (avalanche) Order(loans []model.Loan) []model.Loan {
	return sortedCopy(loans, func(a, b model.Loan) int {
		return b.Interest().Cmp(a.Interest())
	})
}

func (avalanche) Multiplier(bool) int { return 1 }

type snowball struct{}

func (snowball) Name() string { return SnowballName }

func (snowball) Order(loans []model.Loan) []model.Loan {
	return sortedCopy(loans, func(a, b model.Loan) int {
		return a.Principal().Cmp(b.Principal())
	})
}

func (snowball) Multiplier(bool) int { return 1 }

type doubleDouble struct{}

func (doubleDouble) Name() string { return DoubleDoubleName }

func (doubleDouble) Order(loans []model.Loan) []model.Loan {
	return sortedCopy(loans, func(a, b model.Loan) int {
		if c := b.Interest().Cmp(a.Interest()); c != 0 {
			return c
		}
		return a.Principal().Cmp(b.Principal())
	})
}

func (doubleDouble) Multiplier(boosted bool) int {
	if boosted {
		return 2
	}
	return 1
}

func sortedCopy(loans []model.Loan, cmp func(a, b model.Loan) int) []model.Loan {
	out := slices.Clone(loans)
	slices.SortStableFunc(out, cmp)
	return out
}
