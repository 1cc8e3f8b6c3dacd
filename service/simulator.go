package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"debt-payoff/domain"
)

// 12 months * 100 percent
var monthlyRateDivisor = decimal.NewFromInt(1200)

type debtState struct {
	debt    domain.Debt
	balance decimal.Decimal
}

// Simulate builds the month-by-month payoff schedule for the included debts.
//
// It never modifies its inputs and returns the same result for the same
// inputs. The clock is only read when settings.StartDate is empty. A schedule
// that is still owing after settings.MaxMonths is returned with
// HorizonExceeded set; only invalid input produces an error.
func Simulate(debts []domain.Debt, settings domain.Settings) (domain.PlanResult, error) {
	return simulate(debts, settings, time.Now)
}

func simulate(
	debts []domain.Debt,
	settings domain.Settings,
	now func() time.Time,
) (domain.PlanResult, error) {

	if err := ValidateSettings(settings); err != nil {
		return domain.PlanResult{}, err
	}

	included := make([]domain.Debt, 0, len(debts))
	for _, debt := range debts {
		if debt.Include {
			included = append(included, debt)
		}
	}
	if err := ValidateDebts(included); err != nil {
		return domain.PlanResult{}, err
	}

	settings = ResolveSettings(settings, now)
	start, _ := time.Parse(domain.DateLayout, settings.StartDate)

	states := make([]*debtState, 0, len(included))
	startingBalance := decimal.Zero
	for _, debt := range included {
		balance := debt.Balance.Round(centPlaces)
		states = append(states, &debtState{debt: debt, balance: balance})
		startingBalance = startingBalance.Add(balance)
	}

	result := domain.PlanResult{
		StartDateISO: settings.StartDate,
		Strategy:     settings.Strategy,
		Settings:     settings,
		Months:       []domain.Month{},
		Totals: domain.Totals{
			Interest:              decimal.Zero,
			TotalPaid:             decimal.Zero,
			MonthlyOutflowAtStart: recurringOutflow(activeDebts(states), settings),
			StartingBalance:       startingBalance,
			RemainingBalance:      decimal.Zero,
		},
	}

	for monthIndex := 0; ; monthIndex++ {
		active := activeDebts(states)
		if len(active) == 0 {
			break
		}
		if monthIndex == settings.MaxMonths {
			result.HorizonExceeded = true
			break
		}

		month := simulateMonth(monthIndex, active, settings)
		month.DateISO = addMonths(start, monthIndex).Format(domain.DateLayout)

		result.Months = append(result.Months, month)
		result.Totals.Interest = result.Totals.Interest.Add(month.Totals.Interest)
		result.Totals.TotalPaid = result.Totals.TotalPaid.Add(month.Totals.Outflow)
	}

	for _, st := range states {
		result.Totals.RemainingBalance = result.Totals.RemainingBalance.Add(st.balance)
	}
	if !result.HorizonExceeded && len(result.Months) > 0 {
		result.Totals.MonthsToDebtFree = len(result.Months)
		result.Totals.DebtFreeDateISO = result.Months[len(result.Months)-1].DateISO
	}

	return result, nil
}

// simulateMonth accrues interest, pays minimums, then rolls the rest of the
// pool down the priority order. Payments are returned in priority order and
// every state's balance is advanced to its ending balance.
func simulateMonth(monthIndex int, active []*debtState, settings domain.Settings) domain.Month {
	payments := make([]domain.Payment, len(active))
	owed := make([]decimal.Decimal, len(active))
	pool := monthlyPool(monthIndex, active, settings)
	order := priorityOrder(active, settings.Strategy)

	for i, st := range active {
		interest := st.balance.Mul(st.debt.APR).Div(monthlyRateDivisor).Round(centPlaces)
		owed[i] = st.balance.Add(interest)
		minimum := decimal.Min(st.debt.MinPayment.Round(centPlaces), owed[i])

		payments[i] = domain.Payment{
			DebtID:          st.debt.ID,
			StartingBalance: st.balance,
			InterestAccrued: interest,
			MinimumPaid:     minimum,
			ExtraPaid:       decimal.Zero,
		}
		pool = pool.Sub(minimum)
	}

	// Whatever a capped minimum left behind is already in the pool, so a debt
	// extinguished here frees money for the next debt this same month.
	if settings.Strategy.AllocatesExtra() {
		for _, i := range order {
			if !pool.IsPositive() {
				break
			}
			room := owed[i].Sub(payments[i].MinimumPaid)
			if !room.IsPositive() {
				continue
			}
			extra := decimal.Min(room, pool)
			payments[i].ExtraPaid = extra
			pool = pool.Sub(extra)
		}
	}

	month := domain.Month{
		MonthIndex: monthIndex,
		Payments:   make([]domain.Payment, 0, len(active)),
		Totals: domain.MonthTotals{
			Outflow:  decimal.Zero,
			Interest: decimal.Zero,
			Balance:  decimal.Zero,
		},
	}

	for _, i := range order {
		p := payments[i]
		p.TotalPaid = p.MinimumPaid.Add(p.ExtraPaid)
		p.EndingBalance = owed[i].Sub(p.TotalPaid)
		if p.EndingBalance.Sign() <= 0 {
			p.EndingBalance = decimal.Zero
			p.PaidOff = true
		}
		p.PrincipalPaid = decimal.Max(decimal.Zero, p.TotalPaid.Sub(p.InterestAccrued))

		active[i].balance = p.EndingBalance

		month.Payments = append(month.Payments, p)
		month.Totals.Outflow = month.Totals.Outflow.Add(p.TotalPaid)
		month.Totals.Interest = month.Totals.Interest.Add(p.InterestAccrued)
		month.Totals.Balance = month.Totals.Balance.Add(p.EndingBalance)
	}

	return month
}

func monthlyPool(monthIndex int, active []*debtState, settings domain.Settings) decimal.Decimal {
	pool := recurringOutflow(active, settings)
	if monthIndex == 0 && settings.Strategy.AllocatesExtra() {
		pool = pool.Add(settings.OneTimeExtra.Round(centPlaces))
	}
	return pool
}

// recurringOutflow is the money offered every month: the active minimums plus
// the recurring extra for strategies that allocate one.
func recurringOutflow(active []*debtState, settings domain.Settings) decimal.Decimal {
	total := decimal.Zero
	for _, st := range active {
		total = total.Add(st.debt.MinPayment.Round(centPlaces))
	}
	if settings.Strategy.AllocatesExtra() {
		total = total.Add(settings.ExtraMonthly.Round(centPlaces))
	}
	return total
}

// priorityOrder returns indexes into active. Ties keep input order.
func priorityOrder(active []*debtState, strategy domain.Strategy) []int {
	order := make([]int, len(active))
	for i := range order {
		order[i] = i
	}

	switch strategy {
	case domain.StrategySnowball:
		sort.SliceStable(order, func(a, b int) bool {
			return active[order[a]].balance.LessThan(active[order[b]].balance)
		})
	case domain.StrategyAvalanche:
		sort.SliceStable(order, func(a, b int) bool {
			return active[order[a]].debt.APR.GreaterThan(active[order[b]].debt.APR)
		})
	case domain.StrategyMinimum:
	}
	return order
}

func activeDebts(states []*debtState) []*debtState {
	active := make([]*debtState, 0, len(states))
	for _, st := range states {
		if st.balance.IsPositive() {
			active = append(active, st)
		}
	}
	return active
}

// ResolveSettings fills the defaulted fields so that the returned settings
// fully determine a schedule.
func ResolveSettings(settings domain.Settings, now func() time.Time) domain.Settings {
	if settings.StartDate == "" {
		settings.StartDate = now().UTC().Format(domain.DateLayout)
	}
	if settings.MaxMonths == 0 {
		settings.MaxMonths = DefaultHorizonMonths
	}
	return settings
}

// addMonths moves t forward n calendar months, clamping the day to the end
// of the target month (Jan 31 + 1 month is Feb 28 or 29).
func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}
