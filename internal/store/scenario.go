// Package store persists the user's debt scenario as a single key-value blob
// and keeps a history of plan runs. Backends are SQLite, Redis and memory.
package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/debtburn/internal/model"
)

// StateKey is the single key the scenario blob is stored under.
const StateKey = "debt-calculator-state"

const monthLayout = "2006-01"

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("no saved scenario")

// Fund holds the emergency fund settings of a scenario.
type Fund struct {
	Target     decimal.Decimal `json:"target"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Scenario is everything the user enters: the loans, the monthly budget and
// the month the plan starts.
type Scenario struct {
	Loans               []model.Loan
	TotalMonthlyPayment decimal.Decimal
	StartingMonth       time.Time
	Strategy            string
	EmergencyFund       *Fund
}

type loanRecord struct {
	Name      string          `json:"name"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Minimum   decimal.Decimal `json:"minimum"`
}

type scenarioRecord struct {
	Loans               []loanRecord    `json:"loans"`
	TotalMonthlyPayment decimal.Decimal `json:"totalMonthlyPayment"`
	StartingMonth       string          `json:"startingMonth,omitempty"`
	Strategy            string          `json:"strategy,omitempty"`
	EmergencyFund       *Fund           `json:"emergencyFund,omitempty"`
}

// Encode serializes s as JSON and base64-encodes it.
func Encode(s Scenario) (string, error) {
	rec := scenarioRecord{
		Loans:               make([]loanRecord, 0, len(s.Loans)),
		TotalMonthlyPayment: s.TotalMonthlyPayment,
		Strategy:            s.Strategy,
		EmergencyFund:       s.EmergencyFund,
	}
	if !s.StartingMonth.IsZero() {
		rec.StartingMonth = s.StartingMonth.Format(monthLayout)
	}
	for _, l := range s.Loans {
		rec.Loans = append(rec.Loans, loanRecord{
			Name:      l.Name(),
			Principal: l.Principal(),
			Interest:  l.Interest(),
			Minimum:   l.Minimum(),
		})
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshaling scenario: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Decode reverses Encode. Every loan is rebuilt through model.NewLoan, so a
// tampered blob fails validation instead of producing an invalid loan.
func Decode(blob string) (Scenario, error) {
	data, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return Scenario{}, fmt.Errorf("decoding scenario: %w", err)
	}
	var rec scenarioRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return Scenario{}, fmt.Errorf("parsing scenario: %w", err)
	}

	s := Scenario{
		TotalMonthlyPayment: rec.TotalMonthlyPayment,
		Strategy:            rec.Strategy,
		EmergencyFund:       rec.EmergencyFund,
	}
	if rec.StartingMonth != "" {
		s.StartingMonth, err = time.Parse(monthLayout, rec.StartingMonth)
		if err != nil {
			return Scenario{}, fmt.Errorf("parsing starting month: %w", err)
		}
	}
	for _, lr := range rec.Loans {
		l, err := model.NewLoan(lr.Name, lr.Principal, lr.Interest, lr.Minimum)
		if err != nil {
			return Scenario{}, fmt.Errorf("loan %q: %w", lr.Name, err)
		}
		s.Loans = append(s.Loans, l)
	}
	return s, nil
}

// Load reads the saved scenario from b.
func Load(ctx context.Context, b Backend) (Scenario, error) {
	blob, ok, err := b.Get(ctx, StateKey)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading scenario: %w", err)
	}
	if !ok {
		return Scenario{}, ErrNotFound
	}
	return Decode(blob)
}

// Save overwrites the saved scenario in b.
func Save(ctx context.Context, b Backend, s Scenario) error {
	blob, err := Encode(s)
	if err != nil {
		return err
	}
	if err := b.Set(ctx, StateKey, blob); err != nil {
		return fmt.Errorf("writing scenario: %w", err)
	}
	return nil
}
