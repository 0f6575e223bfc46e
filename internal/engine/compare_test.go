package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/debtburn/internal/model"
)

func compareLoans(t *testing.T) []model.Loan {
	return []model.Loan{
		mustLoan(t, "card", "5000", "0.25", "100"),
		mustLoan(t, "car", "1000", "0.05", "25"),
	}
}

func TestCompare(t *testing.T) {
	summaries, err := Compare(compareLoans(t), dec("800"), 5, nil)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	byName := map[string]Summary{}
	for _, s := range summaries {
		byName[s.Strategy] = s
	}
	av, sb := byName[AvalancheName], byName[SnowballName]
	assert.True(t, av.TotalInterest.LessThanOrEqual(sb.TotalInterest),
		"avalanche %s > snowball %s", av.TotalInterest, sb.TotalInterest)

	best, ok := Cheapest(summaries)
	require.True(t, ok)
	assert.True(t, best.TotalInterest.Equal(av.TotalInterest))
}

func TestCompare_FundIsCopied(t *testing.T) {
	fund, err := NewEmergencyFund(dec("500"), dec("0.5"))
	require.NoError(t, err)

	summaries, err := Compare(compareLoans(t), dec("800"), 5, fund)
	require.NoError(t, err)
	for _, s := range summaries {
		assert.True(t, s.FundPaidOff, s.Strategy)
	}
	assert.Empty(t, fund.Payments(), "the template fund is never paid into")
}

func TestCompare_Errors(t *testing.T) {
	_, err := Compare(compareLoans(t), dec("10"), 5, nil)
	var ierr *InsufficientContributionError
	assert.True(t, errors.As(err, &ierr))
	assert.Contains(t, err.Error(), "snowball: ")
}

func TestCheapest_Empty(t *testing.T) {
	_, ok := Cheapest(nil)
	assert.False(t, ok)
}
