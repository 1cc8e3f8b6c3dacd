package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/k0kubun/pp/v3"
	"gopkg.in/yaml.v3"

	"debt-payoff/domain"
	"debt-payoff/service"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatCSV   = "csv"
	formatDump  = "dump"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	paidOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	bestStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")) // cyan
)

func debtNames(debts []domain.Debt) map[string]string {
	names := make(map[string]string, len(debts))
	for _, d := range debts {
		names[d.ID] = d.Name
	}
	return names
}

func renderSchedule(w io.Writer, debts []domain.Debt, result domain.PlanResult) {
	names := debtNames(debts)

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf(
		"%s plan from %s, $%s/month", result.Strategy, result.StartDateISO,
		result.Totals.MonthlyOutflowAtStart.StringFixed(2),
	)))

	for _, month := range result.Months {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Month %d  %s", month.MonthIndex+1, month.DateISO)))
		for _, p := range month.Payments {
			line := fmt.Sprintf("  %-24s | start %10s | interest %8s | paid %10s (min %s + extra %s) | end %10s",
				names[p.DebtID],
				p.StartingBalance.StringFixed(2),
				p.InterestAccrued.StringFixed(2),
				p.TotalPaid.StringFixed(2),
				p.MinimumPaid.StringFixed(2),
				p.ExtraPaid.StringFixed(2),
				p.EndingBalance.StringFixed(2),
			)
			if p.PaidOff {
				fmt.Fprintln(w, paidOffStyle.Render(line+"  paid off"))
				continue
			}
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("  paid %s, interest %s, owed %s",
			month.Totals.Outflow.StringFixed(2),
			month.Totals.Interest.StringFixed(2),
			month.Totals.Balance.StringFixed(2),
		)))
	}

	fmt.Fprintln(w)
	renderPayoffOrder(w, names, result)
	renderTotals(w, result)
}

func renderPayoffOrder(w io.Writer, names map[string]string, result domain.PlanResult) {
	events := service.PayoffOrder(result)
	if len(events) == 0 {
		return
	}
	fmt.Fprintln(w, headerStyle.Render("Payoff order"))
	for i, e := range events {
		fmt.Fprintf(w, "  %d. %-24s %s (month %d)\n", i+1, names[e.DebtID], e.DateISO, e.MonthIndex+1)
	}
	fmt.Fprintln(w)
}

func renderTotals(w io.Writer, result domain.PlanResult) {
	fmt.Fprintf(w, "Total paid:     $%s\n", result.Totals.TotalPaid.StringFixed(2))
	fmt.Fprintf(w, "Total interest: $%s\n", result.Totals.Interest.StringFixed(2))
	if result.HorizonExceeded {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("Still owed after %d months: $%s",
			result.Settings.MaxMonths, result.Totals.RemainingBalance.StringFixed(2))))
	} else if result.Totals.MonthsToDebtFree > 0 {
		fmt.Fprintf(w, "Debt-free:      %s (%d months)\n", result.Totals.DebtFreeDateISO, result.Totals.MonthsToDebtFree)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, service.DescribePlan(result))
}

func renderComparison(w io.Writer, comparison domain.StrategyComparison) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-18s | %12s | %12s | %7s | %-10s | %12s | %6s",
		"strategy", "interest", "total paid", "months", "debt-free", "saved", "sooner")))

	for _, s := range comparison.Strategies {
		months := strconv.Itoa(s.MonthsToDebtFree)
		date := s.DebtFreeDateISO
		if s.HorizonExceeded {
			months, date = "-", "never"
		}
		line := fmt.Sprintf("%-18s | %12s | %12s | %7s | %-10s | %12s | %6d",
			s.Strategy,
			s.TotalInterest.StringFixed(2),
			s.TotalPaid.StringFixed(2),
			months,
			date,
			s.InterestSaved.StringFixed(2),
			s.MonthsSaved,
		)

		switch {
		case s.HorizonExceeded:
			line = warnStyle.Render(line)
		case s.Strategy == comparison.LowestInterest || s.Strategy == comparison.Fastest:
			line = bestStyle.Render(line)
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, service.DescribeComparison(comparison))
}

func writeScheduleCSV(w io.Writer, debts []domain.Debt, result domain.PlanResult) error {
	names := debtNames(debts)
	cw := csv.NewWriter(w)

	header := []string{
		"month", "date", "debt_id", "debt", "starting_balance", "interest",
		"minimum", "extra", "total_paid", "principal", "ending_balance", "paid_off",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, month := range result.Months {
		for _, p := range month.Payments {
			row := []string{
				strconv.Itoa(month.MonthIndex + 1),
				month.DateISO,
				p.DebtID,
				names[p.DebtID],
				p.StartingBalance.StringFixed(2),
				p.InterestAccrued.StringFixed(2),
				p.MinimumPaid.StringFixed(2),
				p.ExtraPaid.StringFixed(2),
				p.TotalPaid.StringFixed(2),
				p.PrincipalPaid.StringFixed(2),
				p.EndingBalance.StringFixed(2),
				strconv.FormatBool(p.PaidOff),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// writeStructured handles the formats shared by every command.
func writeStructured(w io.Writer, format string, v interface{}) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case formatDump:
		printer := pp.New()
		printer.SetColoringEnabled(false)
		_, err := printer.Fprintln(w, v)
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}
