package budget_plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/busanbiff/tripbudget/internal/kvstore"
	log "github.com/sirupsen/logrus"
)

const storageKey = "budgetPlan"

type Repository interface {
	// GetPlan returns ErrPlanNotFound when the traveler has no plan.
	GetPlan(ctx context.Context, userId int) (BudgetPlan, error)
	StorePlan(ctx context.Context, userId int, plan BudgetPlan) error
	DeletePlan(ctx context.Context, userId int) error
}

// KVRepository keeps the plan as one JSON document under the "budgetPlan" key.
type KVRepository struct {
	store kvstore.Store
}

func NewKVRepository(store kvstore.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) GetPlan(ctx context.Context, userId int) (BudgetPlan, error) {
	value, err := r.store.Get(ctx, userId, storageKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return BudgetPlan{}, ErrPlanNotFound
	}
	if err != nil {
		return BudgetPlan{}, fmt.Errorf("could not load budget plan: %w", err)
	}

	var plan BudgetPlan
	if err := json.Unmarshal(value, &plan); err != nil {
		log.Warnf("ignoring malformed budget plan of user %d: %v", userId, err)
		return BudgetPlan{}, ErrPlanNotFound
	}
	return plan, nil
}

func (r *KVRepository) StorePlan(ctx context.Context, userId int, plan BudgetPlan) error {
	value, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("could not encode budget plan: %w", err)
	}
	if err := r.store.Put(ctx, userId, storageKey, value); err != nil {
		return fmt.Errorf("could not store budget plan: %w", err)
	}
	return nil
}

func (r *KVRepository) DeletePlan(ctx context.Context, userId int) error {
	if err := r.store.Delete(ctx, userId, storageKey); err != nil {
		return fmt.Errorf("could not delete budget plan: %w", err)
	}
	return nil
}
