package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debt-payoff/domain"
)

func TestImportCSV(t *testing.T) {
	input := `Debt, Amount, Rate, Minimum, Due Day, Category
Visa,"$2,500.00",22.99%,75,15,card

Car,9000,6.4,220,,auto
`
	rows, err := ImportCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, domain.RawDebt{
		Row:        2,
		Name:       "Visa",
		Balance:    "$2,500.00",
		APR:        "22.99%",
		MinPayment: "75",
		DueDay:     "15",
		Category:   "card",
	}, rows[0])
	assert.Equal(t, 4, rows[1].Row, "blank lines still count toward row numbers")
	assert.Equal(t, "Car", rows[1].Name)
	assert.Empty(t, rows[1].DueDay)
}

func TestImportCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no balance column", "name,apr\nVisa,20\n"},
		{"no name column", "balance,apr\n100,20\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportCSV(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestImportCSVMalformed(t *testing.T) {
	_, err := ImportCSV(strings.NewReader("name,balance\n\"Visa,100\n"))
	assert.Error(t, err)
}
