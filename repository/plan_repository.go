package repository

import (
	"context"

	"debt-payoff/domain"
)

// PlanRepository stores the canonical inputs of a plan. Save assigns an ID
// when the plan has none and maintains the timestamps.
//
//go:generate mockgen -destination=mocks/mock_plan_repository.go -package=mocks -source=plan_repository.go PlanRepository
type PlanRepository interface {
	Save(ctx context.Context, plan domain.Plan) (domain.Plan, error)
	Get(ctx context.Context, id string) (domain.Plan, error)
	List(ctx context.Context) ([]domain.Plan, error)
	Delete(ctx context.Context, id string) error
}
