package domain

import "github.com/shopspring/decimal"

// DateLayout is the ISO calendar date format used for every date in a plan.
const DateLayout = "2006-01-02"

type Settings struct {
	Strategy     Strategy        `json:"strategy" yaml:"strategy"`
	ExtraMonthly decimal.Decimal `json:"extraMonthly" yaml:"extra_monthly"`
	OneTimeExtra decimal.Decimal `json:"oneTimeExtra" yaml:"one_time_extra"`
	StartDate    string          `json:"startDate,omitempty" yaml:"start_date,omitempty"` // empty means today
	MaxMonths    int             `json:"maxMonths,omitempty" yaml:"max_months,omitempty"` // 0 means the default horizon
}
