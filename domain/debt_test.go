package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"debt-payoff/domain"
)

func TestDebtIncludeDefaultsToTrue(t *testing.T) {
	var debts []domain.Debt
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id": "a", "name": "Visa", "balance": "100", "apr": "19.99", "minPayment": "25"},
		{"id": "b", "name": "Old", "balance": 50, "apr": 0, "minPayment": 10, "include": false}
	]`), &debts))

	require.Len(t, debts, 2)
	assert.True(t, debts[0].Include)
	assert.False(t, debts[1].Include)
	assert.Equal(t, "19.99", debts[0].APR.String())
	assert.Equal(t, "50", debts[1].Balance.String())

	var fromYAML []domain.Debt
	require.NoError(t, yaml.Unmarshal([]byte(`
- id: a
  name: Visa
  balance: "100"
  min_payment: "25"
- id: b
  name: Old
  include: false
`), &fromYAML))

	require.Len(t, fromYAML, 2)
	assert.True(t, fromYAML[0].Include)
	assert.False(t, fromYAML[1].Include)
	assert.Equal(t, "25", fromYAML[0].MinPayment.String())
}

func TestDebtYAMLRoundTrip(t *testing.T) {
	var debt domain.Debt
	require.NoError(t, yaml.Unmarshal([]byte("id: a\nname: Visa\nbalance: \"1234.50\"\ndue_day: 12\n"), &debt))

	out, err := yaml.Marshal(debt)
	require.NoError(t, err)
	assert.Contains(t, string(out), "balance: \"1234.5\"")
	assert.Contains(t, string(out), "due_day: 12")
	assert.Contains(t, string(out), "include: true")
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		input   string
		want    domain.Strategy
		wantErr bool
	}{
		{"snowball", domain.StrategySnowball, false},
		{" Avalanche ", domain.StrategyAvalanche, false},
		{"MINIMUM", domain.StrategyMinimum, false},
		{"", "", true},
		{"compare", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := domain.ParseStrategy(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStrategyAllocatesExtra(t *testing.T) {
	assert.True(t, domain.StrategySnowball.AllocatesExtra())
	assert.True(t, domain.StrategyAvalanche.AllocatesExtra())
	assert.False(t, domain.StrategyMinimum.AllocatesExtra())
	assert.False(t, domain.Strategy("other").Valid())
}
