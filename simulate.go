package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"debt-payoff/config"
	"debt-payoff/domain"
	"debt-payoff/repository"
	"debt-payoff/service"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [flags] <plan.yaml>",
	Short: "Print the month-by-month schedule of a plan file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimulate,
}

var compareCmd = &cobra.Command{
	Use:   "compare [flags] <plan.yaml>",
	Short: "Compare snowball, avalanche and minimum payments for a plan file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompare,
}

func init() {
	for _, cmd := range []*cobra.Command{simulateCmd, compareCmd} {
		cmd.Flags().String("extra", "", "override the recurring extra monthly payment")
		cmd.Flags().String("one-time", "", "override the one-time extra paid in the first month")
		cmd.Flags().String("start", "", "override the start date (YYYY-MM-DD)")
		cmd.Flags().Int("months", 0, "override the simulation horizon in months")
	}
	simulateCmd.Flags().String("strategy", "", "override the strategy (snowball, avalanche, minimum)")
	simulateCmd.Flags().StringP("format", "f", formatTable, "output format: table, json, yaml, csv or dump")
	compareCmd.Flags().StringP("format", "f", formatTable, "output format: table, json, yaml or dump")
}

// applyOverrides replaces the plan's settings with any flag that was set.
func applyOverrides(cmd *cobra.Command, settings domain.Settings) (domain.Settings, error) {
	flags := cmd.Flags()

	if flags.Changed("strategy") {
		value, _ := flags.GetString("strategy")
		strategy, err := domain.ParseStrategy(value)
		if err != nil {
			return settings, err
		}
		settings.Strategy = strategy
	}

	for name, target := range map[string]*decimal.Decimal{
		"extra":    &settings.ExtraMonthly,
		"one-time": &settings.OneTimeExtra,
	} {
		if !flags.Changed(name) {
			continue
		}
		value, _ := flags.GetString(name)
		amount, err := decimal.NewFromString(value)
		if err != nil {
			return settings, fmt.Errorf("%w: --%s %q is not a number", domain.ErrInvalidInput, name, value)
		}
		*target = amount
	}

	if flags.Changed("start") {
		settings.StartDate, _ = flags.GetString("start")
	}
	if flags.Changed("months") {
		settings.MaxMonths, _ = flags.GetInt("months")
	}
	return settings, nil
}

func localPlanService(cfg *config.Config, logger *log.Logger) *service.PlanService {
	return service.NewPlanService(
		repository.NewPlanRepositoryMemory(),
		repository.NewCacheRepositoryMemory(cfg.CacheEntries, cfg.CacheTTL),
		logger,
		cfg.DefaultHorizon,
	)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	plan, err := loadPlan(cfg, args[0])
	if err != nil {
		return err
	}
	settings, err := applyOverrides(cmd, plan.Settings)
	if err != nil {
		return err
	}

	result, err := localPlanService(cfg, logger).Simulate(cmd.Context(), plan.Debts, settings)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case formatTable:
		renderSchedule(out, plan.Debts, result)
		return nil
	case formatCSV:
		return writeScheduleCSV(out, plan.Debts, result)
	default:
		return writeStructured(out, format, result)
	}
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	plan, err := loadPlan(cfg, args[0])
	if err != nil {
		return err
	}
	settings, err := applyOverrides(cmd, plan.Settings)
	if err != nil {
		return err
	}

	comparison, err := localPlanService(cfg, logger).Compare(cmd.Context(), plan.Debts, settings)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	format, _ := cmd.Flags().GetString("format")
	if format == formatTable {
		renderComparison(out, comparison)
		return nil
	}
	return writeStructured(out, format, comparison)
}
