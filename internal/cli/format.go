// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	hundred  = decimal.NewFromInt(100)
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
)

// FormatMoney formats an amount as dollars with separators and cents.
// e.g., 1234567.891 -> "$1,234,567.89", -5 -> "-$5.00"
func FormatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + FormatMoney(d.Neg())
	}
	s := d.StringFixed(2)
	whole, cents, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return "$" + s
	}
	return "$" + FormatNumber(n) + "." + cents
}

// FormatMoneyShort formats an amount with a human-readable suffix for
// compact cards. e.g., 1234 -> "$1.2K", 2500000 -> "$2.5M", 87.5 -> "$87.50"
func FormatMoneyShort(d decimal.Decimal) string {
	abs := d.Abs()
	switch {
	case abs.GreaterThanOrEqual(million):
		return "$" + d.Div(million).StringFixed(1) + "M"
	case abs.GreaterThanOrEqual(thousand):
		return "$" + d.Div(thousand).StringFixed(1) + "K"
	default:
		return "$" + d.StringFixed(2)
	}
}

// FormatRate formats an annual rate fraction as a percentage.
// e.g., 0.0725 -> "7.25%"
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(hundred).StringFixed(2) + "%"
}

// FormatMonths formats a month count as years and months.
// e.g., 27 -> "2y 3m", 12 -> "1y", 5 -> "5m"
func FormatMonths(n int) string {
	if n <= 0 {
		return "0m"
	}
	years, months := n/12, n%12
	switch {
	case years == 0:
		return fmt.Sprintf("%dm", months)
	case months == 0:
		return fmt.Sprintf("%dy", years)
	default:
		return fmt.Sprintf("%dy %dm", years, months)
	}
}

// FormatMonth formats the month of t. e.g., "Nov 2026"
func FormatMonth(t time.Time) string {
	return t.Format("Jan 2006")
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatSavings formats how much cheaper current is than worst.
// e.g., (900, 1000) -> "-$100.00", equal -> "-"
func FormatSavings(current, worst decimal.Decimal) string {
	delta := worst.Sub(current)
	if delta.IsZero() {
		return "-"
	}
	if delta.IsPositive() {
		return "-" + FormatMoney(delta)
	}
	return "+" + FormatMoney(delta.Neg())
}

// ParseMonth parses a "YYYY-MM" month flag.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (want YYYY-MM)", s)
	}
	return t, nil
}
