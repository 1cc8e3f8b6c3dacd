package domain

import "github.com/shopspring/decimal"

type PayoffEvent struct {
	DebtID     string `json:"debtId" yaml:"debt_id"`
	MonthIndex int    `json:"monthIndex" yaml:"month_index"`
	DateISO    string `json:"dateISO" yaml:"date_iso"`
}

type BalancePoint struct {
	MonthIndex int             `json:"monthIndex" yaml:"month_index"`
	DateISO    string          `json:"dateISO" yaml:"date_iso"`
	Balance    decimal.Decimal `json:"balance" yaml:"balance"`
}

// BalanceReport is the chart-ready view of a plan: the total balance per
// month, each debt's balance per month and the order debts are paid off.
type BalanceReport struct {
	Total       []BalancePoint               `json:"total" yaml:"total"`
	Debts       map[string][]decimal.Decimal `json:"debts" yaml:"debts"`
	PayoffOrder []PayoffEvent                `json:"payoffOrder" yaml:"payoff_order"`
}

type StrategySummary struct {
	Strategy         Strategy        `json:"strategy" yaml:"strategy"`
	TotalInterest    decimal.Decimal `json:"totalInterest" yaml:"total_interest"`
	TotalPaid        decimal.Decimal `json:"totalPaid" yaml:"total_paid"`
	MonthsToDebtFree int             `json:"monthsToDebtFree" yaml:"months_to_debt_free"`
	DebtFreeDateISO  string          `json:"debtFreeDateISO,omitempty" yaml:"debt_free_date_iso,omitempty"`
	HorizonExceeded  bool            `json:"horizonExceeded" yaml:"horizon_exceeded"`

	// Savings against the minimum-only baseline.
	InterestSaved decimal.Decimal `json:"interestSaved" yaml:"interest_saved"`
	MonthsSaved   int             `json:"monthsSaved" yaml:"months_saved"`
}

type StrategyComparison struct {
	Strategies     []StrategySummary `json:"strategies" yaml:"strategies"`
	LowestInterest Strategy          `json:"lowestInterest" yaml:"lowest_interest"`
	Fastest        Strategy          `json:"fastest" yaml:"fastest"`
}
