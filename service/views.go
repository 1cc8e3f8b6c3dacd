package service

import (
	"github.com/shopspring/decimal"

	"debt-payoff/domain"
)

// PayoffOrder lists debts in the order they reach a zero balance.
func PayoffOrder(result domain.PlanResult) []domain.PayoffEvent {
	events := []domain.PayoffEvent{}
	for _, month := range result.Months {
		for _, p := range month.Payments {
			if p.PaidOff {
				events = append(events, domain.PayoffEvent{
					DebtID:     p.DebtID,
					MonthIndex: month.MonthIndex,
					DateISO:    month.DateISO,
				})
			}
		}
	}
	return events
}

// BalanceSeries is the total remaining balance at the end of every month.
func BalanceSeries(result domain.PlanResult) []domain.BalancePoint {
	points := make([]domain.BalancePoint, 0, len(result.Months))
	for _, month := range result.Months {
		points = append(points, domain.BalancePoint{
			MonthIndex: month.MonthIndex,
			DateISO:    month.DateISO,
			Balance:    month.Totals.Balance,
		})
	}
	return points
}

// DebtBalanceSeries returns each debt's ending balance per month. Every debt
// with a balance is active in the first month, and once paid off its series
// is padded with zeros.
func DebtBalanceSeries(result domain.PlanResult) map[string][]decimal.Decimal {
	series := make(map[string][]decimal.Decimal)
	for i, month := range result.Months {
		for _, p := range month.Payments {
			if _, ok := series[p.DebtID]; !ok {
				series[p.DebtID] = make([]decimal.Decimal, 0, len(result.Months))
			}
			series[p.DebtID] = append(series[p.DebtID], p.EndingBalance)
		}
		for id, values := range series {
			if len(values) == i {
				series[id] = append(values, decimal.Zero)
			}
		}
	}
	return series
}

// Balances collects the balance series and payoff order of a result.
func Balances(result domain.PlanResult) domain.BalanceReport {
	return domain.BalanceReport{
		Total:       BalanceSeries(result),
		Debts:       DebtBalanceSeries(result),
		PayoffOrder: PayoffOrder(result),
	}
}

// CompareStrategies simulates every strategy over the same debts and reports
// each one against the minimum-only baseline.
func CompareStrategies(debts []domain.Debt, settings domain.Settings) (domain.StrategyComparison, error) {
	if settings.Strategy == "" {
		settings.Strategy = domain.StrategySnowball
	}
	if err := ValidateSettings(settings); err != nil {
		return domain.StrategyComparison{}, err
	}

	results := make(map[domain.Strategy]domain.PlanResult, len(domain.Strategies))
	for _, strategy := range domain.Strategies {
		s := settings
		s.Strategy = strategy
		result, err := Simulate(debts, s)
		if err != nil {
			return domain.StrategyComparison{}, err
		}
		results[strategy] = result
	}

	baseline := results[domain.StrategyMinimum]
	comparison := domain.StrategyComparison{
		Strategies: make([]domain.StrategySummary, 0, len(domain.Strategies)),
	}

	var lowest, fastest *domain.StrategySummary
	for _, strategy := range domain.Strategies {
		result := results[strategy]
		summary := domain.StrategySummary{
			Strategy:         strategy,
			TotalInterest:    result.Totals.Interest,
			TotalPaid:        result.Totals.TotalPaid,
			MonthsToDebtFree: result.Totals.MonthsToDebtFree,
			DebtFreeDateISO:  result.Totals.DebtFreeDateISO,
			HorizonExceeded:  result.HorizonExceeded,
			InterestSaved:    baseline.Totals.Interest.Sub(result.Totals.Interest),
			MonthsSaved:      len(baseline.Months) - len(result.Months),
		}
		comparison.Strategies = append(comparison.Strategies, summary)
	}

	// Ties go to the earlier strategy in presentation order.
	for i := range comparison.Strategies {
		summary := &comparison.Strategies[i]
		if lowest == nil || summary.TotalInterest.LessThan(lowest.TotalInterest) {
			lowest = summary
		}
		if summary.HorizonExceeded {
			continue
		}
		if fastest == nil || summary.MonthsToDebtFree < fastest.MonthsToDebtFree {
			fastest = summary
		}
	}
	if lowest != nil {
		comparison.LowestInterest = lowest.Strategy
	}
	if fastest != nil {
		comparison.Fastest = fastest.Strategy
	}

	return comparison, nil
}
