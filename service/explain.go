package service

import (
	"fmt"
	"strings"

	"debt-payoff/domain"
)

var strategyNames = map[domain.Strategy]string{
	domain.StrategySnowball:  "Snowball",
	domain.StrategyAvalanche: "Avalanche",
	domain.StrategyMinimum:   "Minimum payments",
}

// DescribePlan summarizes a schedule in one or two plain sentences.
func DescribePlan(result domain.PlanResult) string {
	name := strategyNames[result.Strategy]
	if len(result.Months) == 0 {
		return "There is nothing to pay off."
	}

	if result.HorizonExceeded {
		years := float64(result.Settings.MaxMonths) / 12.0
		return fmt.Sprintf(
			"%s does not pay off these debts within %.1f years. $%s is still owed after paying $%s in interest.",
			name, years, result.Totals.RemainingBalance.StringFixed(2), result.Totals.Interest.StringFixed(2),
		)
	}

	months := result.Totals.MonthsToDebtFree
	return fmt.Sprintf(
		"%s pays off $%s in %d months (%.1f years), paying $%s in interest. %s",
		name, result.Totals.StartingBalance.StringFixed(2), months, float64(months)/12.0,
		result.Totals.Interest.StringFixed(2), strategyTip(result.Strategy),
	)
}

// DescribeComparison points out the cheapest and the fastest strategy.
func DescribeComparison(comparison domain.StrategyComparison) string {
	var b strings.Builder
	for _, summary := range comparison.Strategies {
		if summary.Strategy != comparison.LowestInterest {
			continue
		}
		fmt.Fprintf(&b, "%s costs the least interest ($%s", strategyNames[summary.Strategy], summary.TotalInterest.StringFixed(2))
		if summary.InterestSaved.IsPositive() {
			fmt.Fprintf(&b, ", $%s less than minimum payments", summary.InterestSaved.StringFixed(2))
		}
		b.WriteString(").")
	}

	if comparison.Fastest == "" {
		b.WriteString(" No strategy pays off these debts within the horizon.")
		return strings.TrimSpace(b.String())
	}
	for _, summary := range comparison.Strategies {
		if summary.Strategy == comparison.Fastest {
			fmt.Fprintf(&b, " %s is debt-free soonest, in %d months.", strategyNames[summary.Strategy], summary.MonthsToDebtFree)
		}
	}
	return strings.TrimSpace(b.String())
}

func strategyTip(strategy domain.Strategy) string {
	switch strategy {
	case domain.StrategySnowball:
		return "Clearing the smallest balances first frees up their minimums early."
	case domain.StrategyAvalanche:
		return "Paying the highest rates first keeps total interest down."
	default:
		return "Adding any extra each month would shorten this."
	}
}
