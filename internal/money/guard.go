package money

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// ValidationError reports a value that breaks a construction invariant.
// The message always carries the field name and the offending value.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s (%s) %s", e.Field, e.Value, e.Reason)
}

// MustBeGreaterThan0 fails when value <= 0.
func MustBeGreaterThan0(field string, value decimal.Decimal) error {
	if value.Sign() <= 0 {
		return &ValidationError{Field: field, Value: value.String(), Reason: "cannot be less than or equal to 0"}
	}
	return nil
}

// MustBeGreaterThanOrEqualTo0 fails when value < 0.
func MustBeGreaterThanOrEqualTo0(field string, value decimal.Decimal) error {
	if value.Sign() < 0 {
		return &ValidationError{Field: field, Value: value.String(), Reason: "cannot be less than 0"}
	}
	return nil
}

// MustBeBetween fails when value lies outside the closed range [lo, hi].
func MustBeBetween(field string, value, lo, hi decimal.Decimal) error {
	if value.LessThan(lo) || value.GreaterThan(hi) {
		return &ValidationError{
			Field:  field,
			Value:  value.String(),
			Reason: fmt.Sprintf("cannot be outside of [%s, %s]", lo, hi),
		}
	}
	return nil
}

// MustBePositiveInt fails when n <= 0.
func MustBePositiveInt(field string, n int) error {
	if n <= 0 {
		return &ValidationError{Field: field, Value: strconv.Itoa(n), Reason: "cannot be less than or equal to 0"}
	}
	return nil
}

// MustBeAtMostInt fails when n > hi.
func MustBeAtMostInt(field string, n, hi int) error {
	if n > hi {
		return &ValidationError{Field: field, Value: strconv.Itoa(n), Reason: fmt.Sprintf("cannot be greater than %d", hi)}
	}
	return nil
}

// MustNotBeBlank fails on an empty identifier.
func MustNotBeBlank(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Value: strconv.Quote(value), Reason: "cannot be blank"}
	}
	return nil
}
