package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"debt-payoff/domain"
)

const (
	planKeyPrefix = "debt-payoff:plan:"
	planIndexKey  = "debt-payoff:plans"
)

// RedisPlanRepository keeps each plan as a JSON document plus a set of ids.
type RedisPlanRepository struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisPlanRepository(client *redis.Client) *RedisPlanRepository {
	return &RedisPlanRepository{
		client: client,
		now:    time.Now,
	}
}

func (r *RedisPlanRepository) Save(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	var existing domain.Plan
	if plan.ID != "" {
		stored, err := r.Get(ctx, plan.ID)
		if err != nil && !errors.Is(err, domain.ErrPlanNotFound) {
			return domain.Plan{}, err
		}
		existing = stored
	}

	plan = stamp(plan, existing, r.now())
	data, err := json.Marshal(plan)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("failed to encode plan: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, planKeyPrefix+plan.ID, data, 0)
		pipe.SAdd(ctx, planIndexKey, plan.ID)
		return nil
	})
	if err != nil {
		return domain.Plan{}, fmt.Errorf("failed to store plan %s: %w", plan.ID, err)
	}
	return plan, nil
}

func (r *RedisPlanRepository) Get(ctx context.Context, id string) (domain.Plan, error) {
	data, err := r.client.Get(ctx, planKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Plan{}, domain.ErrPlanNotFound
	}
	if err != nil {
		return domain.Plan{}, fmt.Errorf("failed to load plan %s: %w", id, err)
	}

	var plan domain.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return domain.Plan{}, fmt.Errorf("failed to decode plan %s: %w", id, err)
	}
	return plan, nil
}

func (r *RedisPlanRepository) List(ctx context.Context) ([]domain.Plan, error) {
	ids, err := r.client.SMembers(ctx, planIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	plans := make([]domain.Plan, 0, len(ids))
	for _, id := range ids {
		plan, err := r.Get(ctx, id)
		if errors.Is(err, domain.ErrPlanNotFound) {
			// expired or deleted between SMEMBERS and GET
			continue
		}
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	sortPlans(plans)
	return plans, nil
}

func (r *RedisPlanRepository) Delete(ctx context.Context, id string) error {
	var deleted *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, planKeyPrefix+id)
		pipe.SRem(ctx, planIndexKey, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete plan %s: %w", id, err)
	}
	if deleted.Val() == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}
