package interest

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPrincipalPlusMonthlyInterest(t *testing.T) {
	got := PrincipalPlusMonthlyInterest(dec("1000"), dec("0.1"))
	assert.Equal(t, "1008.33", got.Round(2).String())

	unchanged := PrincipalPlusMonthlyInterest(dec("1000"), decimal.Zero)
	assert.True(t, unchanged.Equal(dec("1000")), "zero rate should leave principal unchanged, got %s", unchanged)
}

func TestLoanPaymentAmount(t *testing.T) {
	// $10,000 at 12% over 24 months is $470.73/month.
	got, err := LoanPaymentAmount(dec("10000"), dec("0.01"), 24)
	require.NoError(t, err)
	assert.Equal(t, "470.73", got.Round(2).String())

	zeroRate, err := LoanPaymentAmount(dec("1200"), decimal.Zero, 12)
	require.NoError(t, err)
	assert.True(t, zeroRate.Equal(dec("100")), "got %s", zeroRate)
}

func TestLoanPaymentAmount_InvalidInputs(t *testing.T) {
	_, err := LoanPaymentAmount(dec("1000"), dec("0.01"), 0)
	assert.EqualError(t, err, "Number of periods (0) cannot be less than or equal to 0")

	_, err = LoanPaymentAmount(dec("1000"), dec("-0.01"), 12)
	assert.Error(t, err)
}

func TestMinimumMonthlyPaymentWithinPeriod(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		minimum   string
		years     int
		want      string
	}{
		{"amortized above floor", "1000", "0.1", "10", 6, "18.53"},
		{"floored at minimum", "1000", "0.1", "50", 6, "50"},
		{"capped at balance plus interest", "5", "0.1", "10", 6, "5.04"},
		{"zero rate", "1200", "0", "10", 1, "100"},
		{"zero rate capped", "8", "0", "10", 1, "8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MinimumMonthlyPaymentWithinPeriod(dec(tt.principal), dec(tt.rate), dec(tt.minimum), tt.years)
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestMinimumMonthlyPaymentWithinPeriod_InvalidYears(t *testing.T) {
	_, err := MinimumMonthlyPaymentWithinPeriod(dec("1000"), dec("0.1"), dec("10"), 0)
	assert.EqualError(t, err, "Years (0) cannot be less than or equal to 0")
}
