package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/debtburn/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustLoan(t *testing.T, name, principal, rate, minimum string) model.Loan {
	t.Helper()
	l, err := model.NewLoan(name, dec(principal), dec(rate), dec(minimum))
	require.NoError(t, err)
	return l
}

func requireDecEqual(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	require.Truef(t, got.Equal(dec(want)), "want %s, got %s %v", want, got, msgAndArgs)
}
