// Package money holds the decimal helpers shared by the repayment engine.
// Amounts are shopspring decimals rounded to cents whenever they are recorded;
// rates keep RatePlaces of working precision.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// Places is the number of fractional digits kept for recorded amounts.
	Places int32 = 2
	// RatePlaces is the working precision for periodic rates and powers.
	RatePlaces int32 = 16
)

var (
	// Zero is the zero amount.
	Zero = decimal.Zero
	// One is the multiplicative identity, used by the compounding formulas.
	One = decimal.NewFromInt(1)
)

// Round rounds d to cents, half away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// FromFloat converts a float amount into a cent-rounded decimal.
func FromFloat(f float64) decimal.Decimal {
	return Round(decimal.NewFromFloat(f))
}

// FromCents builds an amount from an integer number of cents.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -Places)
}

// Cents returns d as an integer number of cents.
func Cents(d decimal.Decimal) int64 {
	return Round(d).Shift(Places).IntPart()
}

// Parse reads a user-entered amount such as "1,250.50" or "$300".
func Parse(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.ReplaceAll(clean, "_", "")
	if clean == "" {
		return Zero, fmt.Errorf("parsing amount %q: empty value", s)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}

// Format renders d with exactly two decimal places, e.g. "1234.50".
func Format(d decimal.Decimal) string {
	return Round(d).StringFixed(Places)
}

// Sum adds up values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// PowInt raises base to an integer power by repeated squaring, rounding every
// intermediate product to RatePlaces+8 digits so long horizons stay cheap.
func PowInt(base decimal.Decimal, n int) decimal.Decimal {
	if n < 0 {
		return One.DivRound(PowInt(base, -n), RatePlaces+8)
	}
	work := RatePlaces + 8
	result := One
	b := base
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(b).Round(work)
		}
		b = b.Mul(b).Round(work)
		n >>= 1
	}
	return result
}
