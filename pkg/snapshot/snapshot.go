// Package snapshot exports and imports a traveler's whole budget state.
package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/busanbiff/tripbudget/pkg/budget_plan"
	"github.com/busanbiff/tripbudget/pkg/expense"
	"github.com/busanbiff/tripbudget/pkg/recommendation"
	"github.com/busanbiff/tripbudget/pkg/user"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidSnapshot = errors.New("invalid snapshot")

type Snapshot struct {
	Plan     *budget_plan.BudgetPlan `json:"budgetPlan,omitempty"`
	Expenses []expense.Expense       `json:"expenses"`
}

type Service interface {
	Export(ctx context.Context) (Snapshot, error)
	// Import validates the snapshot and replaces the stored plan and ledger. Either both are
	// replaced or neither is.
	Import(ctx context.Context, snapshot Snapshot) error
}

type ServiceImpl struct {
	planRepo       budget_plan.Repository
	expenseService expense.Service
}

func NewSnapshotService(planRepo budget_plan.Repository, expenseService expense.Service) *ServiceImpl {
	return &ServiceImpl{planRepo: planRepo, expenseService: expenseService}
}

func (s *ServiceImpl) Export(ctx context.Context) (Snapshot, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to get current user: %w", err)
	}

	var snapshot Snapshot
	plan, err := s.planRepo.GetPlan(ctx, userId)
	switch {
	case err == nil:
		snapshot.Plan = &plan
	case !errors.Is(err, budget_plan.ErrPlanNotFound):
		return Snapshot{}, err
	}

	snapshot.Expenses, err = s.expenseService.ListExpenses(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}

func (s *ServiceImpl) Import(ctx context.Context, snapshot Snapshot) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(snapshot); err != nil {
		return err
	}
	plan, err := withRecommendations(snapshot.Plan)
	if err != nil {
		return err
	}

	// The ledger is written first under the ledger lock; a failed plan write rolls it back.
	err = s.expenseService.ReplaceExpenses(ctx, snapshot.Expenses, func() error {
		if plan == nil {
			return s.planRepo.DeletePlan(ctx, userId)
		}
		return s.planRepo.StorePlan(ctx, userId, *plan)
	})
	if err != nil {
		return err
	}
	log.Infof("imported snapshot for user %d (%d expenses)", userId, len(snapshot.Expenses))
	return nil
}

// withRecommendations rebuilds the interest recommendations from the plan's own interests,
// days and youth pass flag, so imported recommendations never contradict the plan.
func withRecommendations(plan *budget_plan.BudgetPlan) (*budget_plan.BudgetPlan, error) {
	if plan == nil {
		return nil, nil
	}
	rebuilt := *plan
	recommendations, err := recommendation.Generate(plan.Interests, plan.Days, plan.YouthPassApplied)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	rebuilt.InterestRecommendations = recommendations
	return &rebuilt, nil
}

func validate(snapshot Snapshot) error {
	if snapshot.Plan != nil {
		if err := snapshot.Plan.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
		}
	}
	ids := make(map[string]bool, len(snapshot.Expenses))
	for i, e := range snapshot.Expenses {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("%w: expense %d: %w", ErrInvalidSnapshot, i, err)
		}
		if ids[e.Id] {
			return fmt.Errorf("%w: duplicated expense id %s", ErrInvalidSnapshot, e.Id)
		}
		ids[e.Id] = true
	}
	return nil
}
