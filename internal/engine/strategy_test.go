package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/debtburn/internal/model"
)

func names(loans []model.Loan) []string {
	out := make([]string, len(loans))
	for i, l := range loans {
		out[i] = l.Name()
	}
	return out
}

func TestStrategyOrder(t *testing.T) {
	loans := []model.Loan{
		mustLoan(t, "car", "8000", "0.06", "150"),
		mustLoan(t, "card", "3000", "0.24", "60"),
		mustLoan(t, "store", "400", "0.24", "25"),
		mustLoan(t, "student", "20000", "0.045", "200"),
	}
	input := names(loans)

	assert.Equal(t, []string{"card", "store", "car", "student"}, names(Avalanche.Order(loans)))
	assert.Equal(t, []string{"store", "card", "car", "student"}, names(Snowball.Order(loans)))
	assert.Equal(t, []string{"store", "card", "car", "student"}, names(DoubleDouble.Order(loans)))

	assert.Equal(t, input, names(loans), "ordering must not mutate its input")
}

func TestStrategyMultiplier(t *testing.T) {
	assert.Equal(t, 1, Avalanche.Multiplier(true))
	assert.Equal(t, 1, Snowball.Multiplier(true))
	assert.Equal(t, 2, DoubleDouble.Multiplier(true))
	assert.Equal(t, 1, DoubleDouble.Multiplier(false))
}

func TestStrategyByName(t *testing.T) {
	for _, s := range Strategies() {
		got, err := StrategyByName(s.Name())
		require.NoError(t, err)
		assert.Equal(t, s.Name(), got.Name())
	}

	got, err := StrategyByName(" Snowball ")
	require.NoError(t, err)
	assert.Equal(t, SnowballName, got.Name())

	_, err = StrategyByName("random")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Strategy", verr.Field)
}
