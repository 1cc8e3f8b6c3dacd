package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"debt-payoff/domain"
)

// Snapshots written before the payment breakdown existed only kept the amount
// paid, the interest and the ending balance of every payment.
type legacyPayment struct {
	DebtID   string          `json:"debtId"`
	Paid     decimal.Decimal `json:"paid"`
	Interest decimal.Decimal `json:"interest"`
	Balance  decimal.Decimal `json:"balance"`
}

type legacyMonth struct {
	MonthIndex int             `json:"monthIndex"`
	DateISO    string          `json:"dateISO"`
	Payments   []legacyPayment `json:"payments"`
}

type legacySnapshot struct {
	Key       string          `json:"key"`
	CreatedAt time.Time       `json:"createdAt"`
	Debts     []domain.Debt   `json:"debts"`
	Settings  domain.Settings `json:"settings"`
	Result    struct {
		StartDateISO string          `json:"startDateISO"`
		Strategy     domain.Strategy `json:"strategy"`
		Months       []legacyMonth   `json:"months"`
	} `json:"result"`
}

// MigrateSnapshot decodes a cached snapshot of any known version into the
// current layout.
func MigrateSnapshot(data []byte) (domain.PlanSnapshot, error) {
	var header struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return domain.PlanSnapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}

	switch header.Version {
	case domain.SnapshotVersion:
		var snapshot domain.PlanSnapshot
		if err := json.Unmarshal(data, &snapshot); err != nil {
			return domain.PlanSnapshot{}, fmt.Errorf("decode snapshot: %w", err)
		}
		return snapshot, nil
	case 0:
		var legacy legacySnapshot
		if err := json.Unmarshal(data, &legacy); err != nil {
			return domain.PlanSnapshot{}, fmt.Errorf("decode legacy snapshot: %w", err)
		}
		return migrateLegacy(legacy), nil
	default:
		return domain.PlanSnapshot{}, fmt.Errorf("%w: %d", domain.ErrUnsupportedSnapshot, header.Version)
	}
}

func migrateLegacy(legacy legacySnapshot) domain.PlanSnapshot {
	minimums := make(map[string]decimal.Decimal, len(legacy.Debts))
	startingBalance := decimal.Zero
	for _, debt := range legacy.Debts {
		minimums[debt.ID] = debt.MinPayment.Round(centPlaces)
		if debt.Include {
			startingBalance = startingBalance.Add(debt.Balance.Round(centPlaces))
		}
	}

	strategy := legacy.Result.Strategy
	if strategy == "" {
		strategy = legacy.Settings.Strategy
	}
	settings := legacy.Settings
	settings.Strategy = strategy
	if settings.StartDate == "" {
		settings.StartDate = legacy.Result.StartDateISO
	}
	if settings.MaxMonths == 0 {
		settings.MaxMonths = DefaultHorizonMonths
	}

	result := domain.PlanResult{
		StartDateISO: legacy.Result.StartDateISO,
		Strategy:     strategy,
		Settings:     settings,
		Months:       make([]domain.Month, 0, len(legacy.Result.Months)),
		Totals: domain.Totals{
			Interest:         decimal.Zero,
			TotalPaid:        decimal.Zero,
			StartingBalance:  startingBalance,
			RemainingBalance: decimal.Zero,
		},
	}

	for _, lm := range legacy.Result.Months {
		month := domain.Month{
			MonthIndex: lm.MonthIndex,
			DateISO:    lm.DateISO,
			Payments:   make([]domain.Payment, 0, len(lm.Payments)),
			Totals: domain.MonthTotals{
				Outflow:  decimal.Zero,
				Interest: decimal.Zero,
				Balance:  decimal.Zero,
			},
		}
		for _, lp := range lm.Payments {
			minimum := decimal.Min(minimums[lp.DebtID], lp.Paid)
			p := domain.Payment{
				DebtID:          lp.DebtID,
				StartingBalance: lp.Balance.Add(lp.Paid).Sub(lp.Interest),
				InterestAccrued: lp.Interest,
				MinimumPaid:     minimum,
				ExtraPaid:       lp.Paid.Sub(minimum),
				TotalPaid:       lp.Paid,
				PrincipalPaid:   decimal.Max(decimal.Zero, lp.Paid.Sub(lp.Interest)),
				EndingBalance:   lp.Balance,
				PaidOff:         lp.Balance.Sign() <= 0,
			}
			month.Payments = append(month.Payments, p)
			month.Totals.Outflow = month.Totals.Outflow.Add(p.TotalPaid)
			month.Totals.Interest = month.Totals.Interest.Add(p.InterestAccrued)
			month.Totals.Balance = month.Totals.Balance.Add(p.EndingBalance)
		}
		result.Months = append(result.Months, month)
		result.Totals.Interest = result.Totals.Interest.Add(month.Totals.Interest)
		result.Totals.TotalPaid = result.Totals.TotalPaid.Add(month.Totals.Outflow)
	}

	if n := len(result.Months); n > 0 {
		first := result.Months[0]
		for _, p := range first.Payments {
			result.Totals.MonthlyOutflowAtStart = result.Totals.MonthlyOutflowAtStart.Add(minimums[p.DebtID])
		}
		if strategy.AllocatesExtra() {
			result.Totals.MonthlyOutflowAtStart = result.Totals.MonthlyOutflowAtStart.Add(settings.ExtraMonthly.Round(centPlaces))
		}

		last := result.Months[n-1]
		result.Totals.RemainingBalance = last.Totals.Balance
		if last.Totals.Balance.IsPositive() {
			result.HorizonExceeded = true
		} else {
			result.Totals.MonthsToDebtFree = n
			result.Totals.DebtFreeDateISO = last.DateISO
		}
	}

	return domain.PlanSnapshot{
		Version:   domain.SnapshotVersion,
		Key:       legacy.Key,
		CreatedAt: legacy.CreatedAt,
		Debts:     legacy.Debts,
		Settings:  settings,
		Result:    result,
	}
}
