package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"debt-payoff/domain"
	"debt-payoff/repository"
)

type PlanService struct {
	plans          repository.PlanRepository
	cache          repository.CacheRepository
	logger         *log.Logger
	defaultHorizon int
	now            func() time.Time
}

func NewPlanService(
	plans repository.PlanRepository,
	cache repository.CacheRepository,
	logger *log.Logger,
	defaultHorizon int,
) *PlanService {
	if defaultHorizon <= 0 || defaultHorizon > MaxHorizonMonths {
		defaultHorizon = DefaultHorizonMonths
	}
	return &PlanService{
		plans:          plans,
		cache:          cache,
		logger:         logger,
		defaultHorizon: defaultHorizon,
		now:            time.Now,
	}
}

// Simulate returns the schedule for debts and settings, serving it from the
// snapshot cache when the same inputs were simulated before. The cache is
// best effort: a failing cache never fails the simulation.
func (s *PlanService) Simulate(
	ctx context.Context,
	debts []domain.Debt,
	settings domain.Settings,
) (domain.PlanResult, error) {

	settings = s.resolve(settings)
	if err := ValidateSettings(settings); err != nil {
		return domain.PlanResult{}, err
	}

	key, err := PlanKey(debts, settings)
	if err != nil {
		return domain.PlanResult{}, err
	}

	if cached, ok := s.cache.Get(ctx, key); ok {
		snapshot, err := MigrateSnapshot([]byte(cached))
		if err == nil {
			s.logger.Debug("plan served from cache", "key", key)
			return snapshot.Result, nil
		}
		s.logger.Warn("discarding cached plan", "key", key, "err", err)
	}

	result, err := simulate(debts, settings, s.now)
	if err != nil {
		return domain.PlanResult{}, err
	}
	if result.HorizonExceeded {
		s.logger.Warn("plan did not pay off within horizon",
			"strategy", result.Strategy,
			"months", result.Settings.MaxMonths,
			"remaining", result.Totals.RemainingBalance.StringFixed(2),
		)
	}

	s.store(ctx, key, debts, settings, result)
	return result, nil
}

// Compare simulates every strategy over the same inputs.
func (s *PlanService) Compare(
	ctx context.Context,
	debts []domain.Debt,
	settings domain.Settings,
) (domain.StrategyComparison, error) {
	if err := ctx.Err(); err != nil {
		return domain.StrategyComparison{}, err
	}
	return CompareStrategies(debts, s.resolve(settings))
}

// SavePlan validates and stores a plan. An empty strategy is stored as
// snowball; start date and horizon stay empty so they resolve when the plan
// is scheduled.
func (s *PlanService) SavePlan(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	if plan.Settings.Strategy == "" {
		plan.Settings.Strategy = domain.StrategySnowball
	}
	if err := ValidateSettings(plan.Settings); err != nil {
		return domain.Plan{}, err
	}
	if err := ValidateDebts(plan.Debts); err != nil {
		return domain.Plan{}, err
	}

	saved, err := s.plans.Save(ctx, plan)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("save plan: %w", err)
	}
	s.logger.Info("plan saved", "id", saved.ID, "debts", len(saved.Debts))
	return saved, nil
}

func (s *PlanService) GetPlan(ctx context.Context, id string) (domain.Plan, error) {
	return s.plans.Get(ctx, id)
}

func (s *PlanService) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	return s.plans.List(ctx)
}

func (s *PlanService) DeletePlan(ctx context.Context, id string) error {
	if err := s.plans.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("plan deleted", "id", id)
	return nil
}

// SchedulePlan loads a stored plan and simulates it.
func (s *PlanService) SchedulePlan(ctx context.Context, id string) (domain.PlanResult, error) {
	plan, err := s.plans.Get(ctx, id)
	if err != nil {
		return domain.PlanResult{}, err
	}
	return s.Simulate(ctx, plan.Debts, plan.Settings)
}

// PlanBalances simulates a stored plan and reduces it to balance series.
func (s *PlanService) PlanBalances(ctx context.Context, id string) (domain.BalanceReport, error) {
	result, err := s.SchedulePlan(ctx, id)
	if err != nil {
		return domain.BalanceReport{}, err
	}
	return Balances(result), nil
}

func (s *PlanService) resolve(settings domain.Settings) domain.Settings {
	if settings.Strategy == "" {
		settings.Strategy = domain.StrategySnowball
	}
	if settings.MaxMonths == 0 {
		settings.MaxMonths = s.defaultHorizon
	}
	return ResolveSettings(settings, s.now)
}

func (s *PlanService) store(
	ctx context.Context,
	key string,
	debts []domain.Debt,
	settings domain.Settings,
	result domain.PlanResult,
) {
	payload, err := json.Marshal(domain.PlanSnapshot{
		Version:   domain.SnapshotVersion,
		Key:       key,
		CreatedAt: s.now().UTC(),
		Debts:     debts,
		Settings:  settings,
		Result:    result,
	})
	if err != nil {
		s.logger.Warn("encode plan snapshot", "key", key, "err", err)
		return
	}
	if err := s.cache.Set(ctx, key, string(payload)); err != nil {
		s.logger.Warn("cache plan snapshot", "key", key, "err", err)
	}
}
