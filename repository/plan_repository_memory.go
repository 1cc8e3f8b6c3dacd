package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"debt-payoff/domain"
)

// PlanRepositoryMemory is an in-memory implementation of PlanRepository.
type PlanRepositoryMemory struct {
	mu    sync.RWMutex
	plans map[string]domain.Plan
	now   func() time.Time
}

// NewPlanRepositoryMemory creates a new in-memory plan repository.
func NewPlanRepositoryMemory() *PlanRepositoryMemory {
	return &PlanRepositoryMemory{
		plans: make(map[string]domain.Plan),
		now:   time.Now,
	}
}

// Save stores a copy of the plan.
func (r *PlanRepositoryMemory) Save(_ context.Context, plan domain.Plan) (domain.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan = stamp(plan, r.plans[plan.ID], r.now())
	plan.Debts = append([]domain.Debt(nil), plan.Debts...)
	r.plans[plan.ID] = plan
	return plan, nil
}

func (r *PlanRepositoryMemory) Get(_ context.Context, id string) (domain.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plan, ok := r.plans[id]
	if !ok {
		return domain.Plan{}, domain.ErrPlanNotFound
	}
	plan.Debts = append([]domain.Debt(nil), plan.Debts...)
	return plan, nil
}

// List returns plans oldest first.
func (r *PlanRepositoryMemory) List(_ context.Context) ([]domain.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plans := make([]domain.Plan, 0, len(r.plans))
	for _, plan := range r.plans {
		plan.Debts = append([]domain.Debt(nil), plan.Debts...)
		plans = append(plans, plan)
	}
	sortPlans(plans)
	return plans, nil
}

func (r *PlanRepositoryMemory) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plans[id]; !ok {
		return domain.ErrPlanNotFound
	}
	delete(r.plans, id)
	return nil
}

// stamp assigns an ID to new plans and keeps CreatedAt from the stored copy.
func stamp(plan, existing domain.Plan, now time.Time) domain.Plan {
	now = now.UTC()
	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}
	if !existing.CreatedAt.IsZero() {
		plan.CreatedAt = existing.CreatedAt
	} else if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now
	return plan
}

func sortPlans(plans []domain.Plan) {
	sort.SliceStable(plans, func(i, j int) bool {
		if plans[i].CreatedAt.Equal(plans[j].CreatedAt) {
			return plans[i].ID < plans[j].ID
		}
		return plans[i].CreatedAt.Before(plans[j].CreatedAt)
	})
}
