package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debt-payoff/domain"
	"debt-payoff/repository"
	"debt-payoff/repository/mocks"
)

func newTestPlanService(plans repository.PlanRepository, cache repository.CacheRepository) *PlanService {
	s := NewPlanService(plans, cache, log.New(io.Discard), 0)
	s.now = fixedClock("2024-01-01")
	return s
}

func samplePlan() domain.Plan {
	return domain.Plan{
		ID:   "plan-1",
		Name: "household",
		Debts: []domain.Debt{
			newDebt("a", "100", "0", "20"),
			newDebt("b", "1000", "0", "30"),
		},
		Settings: domain.Settings{Strategy: domain.StrategySnowball, ExtraMonthly: money("10")},
	}
}

func TestPlanServiceSimulateStoresSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mocks.NewMockCacheRepository(ctrl)
	plan := samplePlan()

	var stored string
	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", false)
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key, value string) error {
			stored = value
			assert.Len(t, key, 16)
			return nil
		})

	s := newTestPlanService(mocks.NewMockPlanRepository(ctrl), cache)
	result, err := s.Simulate(context.Background(), plan.Debts, plan.Settings)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", result.StartDateISO)
	assert.Equal(t, DefaultHorizonMonths, result.Settings.MaxMonths)

	snapshot, err := MigrateSnapshot([]byte(stored))
	require.NoError(t, err)
	assert.Equal(t, domain.SnapshotVersion, snapshot.Version)
	assert.Equal(t, "2024-01-01", snapshot.Settings.StartDate)
	assert.Len(t, snapshot.Result.Months, len(result.Months))
}

func TestPlanServiceSimulateServesCache(t *testing.T) {
	cache := repository.NewCacheRepositoryMemory(0, 0)
	s := newTestPlanService(nil, cache)
	plan := samplePlan()

	fresh, err := s.Simulate(context.Background(), plan.Debts, plan.Settings)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	cached, err := s.Simulate(context.Background(), plan.Debts, plan.Settings)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	want, _ := json.Marshal(fresh)
	got, _ := json.Marshal(cached)
	assert.JSONEq(t, string(want), string(got))
}

func TestPlanServiceSimulateDifferentInputsDifferentKeys(t *testing.T) {
	cache := repository.NewCacheRepositoryMemory(0, 0)
	s := newTestPlanService(nil, cache)
	plan := samplePlan()

	_, err := s.Simulate(context.Background(), plan.Debts, plan.Settings)
	require.NoError(t, err)

	plan.Settings.Strategy = domain.StrategyAvalanche
	_, err = s.Simulate(context.Background(), plan.Debts, plan.Settings)
	require.NoError(t, err)

	assert.Equal(t, 2, cache.Len())
}

func TestPlanServiceSimulateCacheStaysBounded(t *testing.T) {
	cache := repository.NewCacheRepositoryMemory(5, time.Hour)
	s := newTestPlanService(nil, cache)
	plan := samplePlan()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 20; day++ {
		plan.Settings.StartDate = start.AddDate(0, 0, day).Format(domain.DateLayout)
		_, err := s.Simulate(context.Background(), plan.Debts, plan.Settings)
		require.NoError(t, err)
	}

	assert.Equal(t, 5, cache.Len())
}

func TestPlanServiceSimulateIgnoresBadCache(t *testing.T) {
	tests := []struct {
		name   string
		cached string
		setErr error
	}{
		{"corrupt snapshot", "{not json", nil},
		{"unknown version", `{"version": 7}`, nil},
		{"cache write fails", "", errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			cache := mocks.NewMockCacheRepository(ctrl)
			cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.cached, tt.cached != "")
			cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.setErr)

			plan := samplePlan()
			s := newTestPlanService(mocks.NewMockPlanRepository(ctrl), cache)
			result, err := s.Simulate(context.Background(), plan.Debts, plan.Settings)
			require.NoError(t, err)
			assert.NotEmpty(t, result.Months)
		})
	}
}

func TestPlanServiceSimulateInvalidInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mocks.NewMockCacheRepository(ctrl)
	s := newTestPlanService(mocks.NewMockPlanRepository(ctrl), cache)

	_, err := s.Simulate(context.Background(), nil, domain.Settings{Strategy: "bogus"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", false)
	_, err = s.Simulate(context.Background(), []domain.Debt{newDebt("a", "-1", "0", "0")}, domain.Settings{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlanServiceDefaultHorizon(t *testing.T) {
	s := NewPlanService(nil, repository.NewCacheRepositoryMemory(0, 0), log.New(io.Discard), 24)
	s.now = fixedClock("2024-01-01")

	result, err := s.Simulate(context.Background(), []domain.Debt{newDebt("a", "1000", "24", "10")}, domain.Settings{})
	require.NoError(t, err)
	assert.True(t, result.HorizonExceeded)
	assert.Len(t, result.Months, 24)
	assert.Equal(t, domain.StrategySnowball, result.Strategy)

	result, err = s.Simulate(context.Background(), []domain.Debt{newDebt("a", "1000", "24", "10")}, domain.Settings{MaxMonths: 6})
	require.NoError(t, err)
	assert.Len(t, result.Months, 6)
}

func TestPlanServiceSavePlan(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	plans := mocks.NewMockPlanRepository(ctrl)
	s := newTestPlanService(plans, mocks.NewMockCacheRepository(ctrl))

	plan := samplePlan()
	plan.Settings.Strategy = ""
	plans.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p domain.Plan) (domain.Plan, error) {
			assert.Equal(t, domain.StrategySnowball, p.Settings.Strategy)
			return p, nil
		})

	saved, err := s.SavePlan(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, "plan-1", saved.ID)

	invalid := samplePlan()
	invalid.Debts = append(invalid.Debts, newDebt("a", "5", "0", "1"))
	_, err = s.SavePlan(context.Background(), invalid)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlanServiceSchedulePlan(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	plans := mocks.NewMockPlanRepository(ctrl)
	s := newTestPlanService(plans, repository.NewCacheRepositoryMemory(0, 0))

	plans.EXPECT().Get(gomock.Any(), "plan-1").Return(samplePlan(), nil)
	plans.EXPECT().Get(gomock.Any(), "missing").Return(domain.Plan{}, domain.ErrPlanNotFound)

	result, err := s.SchedulePlan(context.Background(), "plan-1")
	require.NoError(t, err)
	assert.Equal(t, 3, PayoffOrder(result)[0].MonthIndex)

	_, err = s.SchedulePlan(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)
}

func TestPlanServicePlanBalances(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	plans := mocks.NewMockPlanRepository(ctrl)
	s := newTestPlanService(plans, repository.NewCacheRepositoryMemory(0, 0))

	plans.EXPECT().Get(gomock.Any(), "plan-1").Return(samplePlan(), nil)
	plans.EXPECT().Get(gomock.Any(), "missing").Return(domain.Plan{}, domain.ErrPlanNotFound)

	report, err := s.PlanBalances(context.Background(), "plan-1")
	require.NoError(t, err)

	require.NotEmpty(t, report.Total)
	assertMoney(t, "1040", report.Total[0].Balance)
	assert.Equal(t, "2024-01-01", report.Total[0].DateISO)
	assert.Len(t, report.Debts["a"], len(report.Total))
	assert.Len(t, report.Debts["b"], len(report.Total))
	assertMoney(t, "0", report.Debts["a"][len(report.Total)-1])
	require.Len(t, report.PayoffOrder, 2)
	assert.Equal(t, "a", report.PayoffOrder[0].DebtID)
	assert.Equal(t, 3, report.PayoffOrder[0].MonthIndex)

	_, err = s.PlanBalances(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)
}

func TestPlanServiceListAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	plans := mocks.NewMockPlanRepository(ctrl)
	s := newTestPlanService(plans, mocks.NewMockCacheRepository(ctrl))

	plans.EXPECT().List(gomock.Any()).Return([]domain.Plan{samplePlan()}, nil)
	plans.EXPECT().Delete(gomock.Any(), "plan-1").Return(nil)
	plans.EXPECT().Delete(gomock.Any(), "plan-1").Return(domain.ErrPlanNotFound)

	list, err := s.ListPlans(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.DeletePlan(context.Background(), "plan-1"))
	assert.ErrorIs(t, s.DeletePlan(context.Background(), "plan-1"), domain.ErrPlanNotFound)
}
