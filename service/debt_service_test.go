package service

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debt-payoff/domain"
)

func newTestDebtService() *DebtService {
	s := NewDebtService(log.New(io.Discard))
	n := 0
	s.newID = func() string {
		n++
		return "debt-" + string(rune('0'+n))
	}
	return s
}

func TestNormalize(t *testing.T) {
	raw := []domain.RawDebt{
		{Row: 2, Name: " Visa ", Balance: "$1,234.50", APR: "18.99%", MinPayment: "35", DueDay: "15", Category: "card"},
		{Row: 3, ID: "car", Name: "Car loan", Balance: "9000", APR: "6.4", MinPayment: "220", Include: "no"},
		{Row: 4, Name: "Medical", Balance: "300", APR: "", MinPayment: " 25 ", Include: "yes"},
	}

	debts, err := newTestDebtService().Normalize(raw)
	require.NoError(t, err)
	require.Len(t, debts, 3)

	assert.Equal(t, "debt-1", debts[0].ID)
	assert.Equal(t, "Visa", debts[0].Name)
	assertMoney(t, "1234.50", debts[0].Balance)
	assertMoney(t, "18.99", debts[0].APR)
	assertMoney(t, "35", debts[0].MinPayment)
	assert.Equal(t, 15, debts[0].DueDay)
	assert.True(t, debts[0].Include)
	assert.Equal(t, "card", debts[0].Category)

	assert.Equal(t, "car", debts[1].ID)
	assert.False(t, debts[1].Include)

	assert.Equal(t, "debt-2", debts[2].ID)
	assertMoney(t, "0", debts[2].APR)
	assert.True(t, debts[2].Include)
}

func TestNormalizeRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  domain.RawDebt
		want string
	}{
		{"missing name", domain.RawDebt{Row: 2, Balance: "100"}, "row 2"},
		{"negative balance", domain.RawDebt{Row: 5, Name: "x", Balance: "-100"}, "row 5"},
		{"accounting negative", domain.RawDebt{Row: 6, Name: "x", Balance: "(100.00)"}, "cannot be negative"},
		{"garbage apr", domain.RawDebt{Row: 7, Name: "x", Balance: "100", APR: "high"}, "not a number"},
		{"bad due day", domain.RawDebt{Row: 8, Name: "x", Balance: "100", DueDay: "soon"}, "due day"},
		{"due day out of range", domain.RawDebt{Row: 9, Name: "x", Balance: "100", DueDay: "31"}, "due day"},
		{"bad include", domain.RawDebt{Row: 10, Name: "x", Balance: "100", Include: "maybe"}, "include"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestDebtService().Normalize([]domain.RawDebt{tt.raw})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestNormalizeRowFallsBackToPosition(t *testing.T) {
	_, err := newTestDebtService().Normalize([]domain.RawDebt{
		{Name: "ok", Balance: "1"},
		{Name: "", Balance: "1"},
	})
	assert.ErrorContains(t, err, "row 2")
}

func TestNormalizeDuplicateIDs(t *testing.T) {
	_, err := newTestDebtService().Normalize([]domain.RawDebt{
		{ID: "x", Name: "one", Balance: "1"},
		{ID: "x", Name: "two", Balance: "2"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalizeAssignsUUIDs(t *testing.T) {
	debts, err := NewDebtService(log.New(io.Discard)).Normalize([]domain.RawDebt{
		{Name: "one", Balance: "1"},
		{Name: "two", Balance: "2"},
	})
	require.NoError(t, err)
	assert.Len(t, debts[0].ID, 36)
	assert.NotEqual(t, debts[0].ID, debts[1].ID)
}
