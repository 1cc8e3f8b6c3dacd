package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"debt-payoff/domain"
)

var maxAPR = decimal.NewFromInt(MaxAPR)

// ValidateDebts rejects any debt that would make the simulator produce a
// negative amount. Inputs are never clamped.
func ValidateDebts(debts []domain.Debt) error {
	if len(debts) > MaxDebtsPerPlan {
		return fmt.Errorf("%w: %d debts exceeds the maximum of %d", domain.ErrInvalidInput, len(debts), MaxDebtsPerPlan)
	}

	seen := make(map[string]bool, len(debts))
	for i, debt := range debts {
		if debt.ID == "" {
			return fmt.Errorf("%w: debt #%d has no id", domain.ErrInvalidInput, i+1)
		}
		if seen[debt.ID] {
			return fmt.Errorf("%w: duplicate debt id %q", domain.ErrInvalidInput, debt.ID)
		}
		seen[debt.ID] = true

		if debt.Balance.IsNegative() {
			return fmt.Errorf("%w: debt %q balance cannot be negative", domain.ErrInvalidInput, debt.ID)
		}
		if debt.APR.IsNegative() {
			return fmt.Errorf("%w: debt %q apr cannot be negative", domain.ErrInvalidInput, debt.ID)
		}
		if debt.APR.GreaterThan(maxAPR) {
			return fmt.Errorf("%w: debt %q apr exceeds %d%%", domain.ErrInvalidInput, debt.ID, MaxAPR)
		}
		if debt.MinPayment.IsNegative() {
			return fmt.Errorf("%w: debt %q minimum payment cannot be negative", domain.ErrInvalidInput, debt.ID)
		}
		if debt.DueDay < 0 || debt.DueDay > MaxDueDay {
			return fmt.Errorf("%w: debt %q due day must be between 1 and %d", domain.ErrInvalidInput, debt.ID, MaxDueDay)
		}
	}
	return nil
}

func ValidateSettings(settings domain.Settings) error {
	if !settings.Strategy.Valid() {
		return fmt.Errorf("%w: unknown strategy %q", domain.ErrInvalidInput, settings.Strategy)
	}
	if settings.ExtraMonthly.IsNegative() {
		return fmt.Errorf("%w: extra monthly payment cannot be negative", domain.ErrInvalidInput)
	}
	if settings.OneTimeExtra.IsNegative() {
		return fmt.Errorf("%w: one-time extra payment cannot be negative", domain.ErrInvalidInput)
	}
	if settings.MaxMonths < 0 || settings.MaxMonths > MaxHorizonMonths {
		return fmt.Errorf("%w: max months must be between 1 and %d", domain.ErrInvalidInput, MaxHorizonMonths)
	}
	if settings.StartDate != "" {
		if _, err := time.Parse(domain.DateLayout, settings.StartDate); err != nil {
			return fmt.Errorf("%w: start date %q is not YYYY-MM-DD", domain.ErrInvalidInput, settings.StartDate)
		}
	}
	return nil
}
