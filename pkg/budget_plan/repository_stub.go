package budget_plan

import (
	"context"
	"sync"
)

type RepositoryStub struct {
	mu    sync.Mutex
	plans map[int]BudgetPlan
	// StoreErr, when set, fails StorePlan and DeletePlan without touching the plans.
	StoreErr error
}

func NewStubBudgetPlanRepo() *RepositoryStub {
	return &RepositoryStub{plans: map[int]BudgetPlan{}}
}

func (s *RepositoryStub) GetPlan(_ context.Context, userId int) (BudgetPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan, ok := s.plans[userId]
	if !ok {
		return BudgetPlan{}, ErrPlanNotFound
	}
	return plan, nil
}

func (s *RepositoryStub) StorePlan(_ context.Context, userId int, plan BudgetPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.StoreErr != nil {
		return s.StoreErr
	}
	s.plans[userId] = plan
	return nil
}

func (s *RepositoryStub) DeletePlan(_ context.Context, userId int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.StoreErr != nil {
		return s.StoreErr
	}
	delete(s.plans, userId)
	return nil
}

func (s *RepositoryStub) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans = map[int]BudgetPlan{}
	s.StoreErr = nil
}
