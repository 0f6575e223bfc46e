package model

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/debtburn/internal/money"
)

// Payment is one period's payment applied to a loan.
type Payment struct {
	paid       decimal.Decimal
	remaining  decimal.Decimal
	multiplier int
}

// NewPayment validates and builds a Payment. A multiplier of 1 is a regular
// payment; larger values mark a boosted payment.
func NewPayment(paid, remaining decimal.Decimal, multiplier int) (Payment, error) {
	if err := money.MustBeGreaterThan0("Paid", paid); err != nil {
		return Payment{}, err
	}
	if err := money.MustBeGreaterThanOrEqualTo0("Remaining", remaining); err != nil {
		return Payment{}, err
	}
	if err := money.MustBePositiveInt("Multiplier", multiplier); err != nil {
		return Payment{}, err
	}
	return Payment{paid: paid, remaining: remaining, multiplier: multiplier}, nil
}

// Paid is the amount paid this period.
func (p Payment) Paid() decimal.Decimal { return p.paid }

// Remaining is the balance left after this payment.
func (p Payment) Remaining() decimal.Decimal { return p.remaining }

// Multiplier reports whether the payment was boosted (> 1).
func (p Payment) Multiplier() int { return p.multiplier }

// EmergencyFundPayment is one period's contribution toward an emergency fund.
type EmergencyFundPayment struct {
	payment         decimal.Decimal
	amountRemaining decimal.Decimal
}

// NewEmergencyFundPayment validates and builds an EmergencyFundPayment.
func NewEmergencyFundPayment(payment, amountRemaining decimal.Decimal) (EmergencyFundPayment, error) {
	if err := money.MustBeGreaterThan0("Payment", payment); err != nil {
		return EmergencyFundPayment{}, err
	}
	if err := money.MustBeGreaterThanOrEqualTo0("Amount remaining", amountRemaining); err != nil {
		return EmergencyFundPayment{}, err
	}
	return EmergencyFundPayment{payment: payment, amountRemaining: amountRemaining}, nil
}

// Payment is the amount contributed this period.
func (p EmergencyFundPayment) Payment() decimal.Decimal { return p.payment }

// AmountRemaining is what is still needed to reach the fund's target.
func (p EmergencyFundPayment) AmountRemaining() decimal.Decimal { return p.amountRemaining }
