package domain

import "github.com/shopspring/decimal"

// Payment is one debt's activity within one simulated month.
type Payment struct {
	DebtID          string          `json:"debtId" yaml:"debt_id"`
	StartingBalance decimal.Decimal `json:"startingBalance" yaml:"starting_balance"`
	InterestAccrued decimal.Decimal `json:"interestAccrued" yaml:"interest_accrued"`
	MinimumPaid     decimal.Decimal `json:"minimumPaid" yaml:"minimum_paid"`
	ExtraPaid       decimal.Decimal `json:"extraPaid" yaml:"extra_paid"`
	TotalPaid       decimal.Decimal `json:"totalPaid" yaml:"total_paid"`
	PrincipalPaid   decimal.Decimal `json:"principalPaid" yaml:"principal_paid"`
	EndingBalance   decimal.Decimal `json:"endingBalance" yaml:"ending_balance"`
	PaidOff         bool            `json:"paidOff" yaml:"paid_off"`
}

type MonthTotals struct {
	Outflow  decimal.Decimal `json:"outflow" yaml:"outflow"`
	Interest decimal.Decimal `json:"interest" yaml:"interest"`
	Balance  decimal.Decimal `json:"balance" yaml:"balance"` // sum of ending balances
}

type Month struct {
	MonthIndex int         `json:"monthIndex" yaml:"month_index"`
	DateISO    string      `json:"dateISO" yaml:"date_iso"`
	Payments   []Payment   `json:"payments" yaml:"payments"`
	Totals     MonthTotals `json:"totals" yaml:"totals"`
}

type Totals struct {
	Interest              decimal.Decimal `json:"interest" yaml:"interest"`
	TotalPaid             decimal.Decimal `json:"totalPaid" yaml:"total_paid"`
	MonthlyOutflowAtStart decimal.Decimal `json:"monthlyOutflowAtStart" yaml:"monthly_outflow_at_start"`
	MonthsToDebtFree      int             `json:"monthsToDebtFree" yaml:"months_to_debt_free"`
	StartingBalance       decimal.Decimal `json:"startingBalance" yaml:"starting_balance"`
	RemainingBalance      decimal.Decimal `json:"remainingBalance" yaml:"remaining_balance"`
	DebtFreeDateISO       string          `json:"debtFreeDateISO,omitempty" yaml:"debt_free_date_iso,omitempty"`
}

// PlanResult is the complete payoff schedule for one set of inputs.
// HorizonExceeded is set when debts were still owed after Settings.MaxMonths.
type PlanResult struct {
	StartDateISO    string   `json:"startDateISO" yaml:"start_date_iso"`
	Strategy        Strategy `json:"strategy" yaml:"strategy"`
	Settings        Settings `json:"settings" yaml:"settings"`
	Months          []Month  `json:"months" yaml:"months"`
	Totals          Totals   `json:"totals" yaml:"totals"`
	HorizonExceeded bool     `json:"horizonExceeded" yaml:"horizon_exceeded"`
}
