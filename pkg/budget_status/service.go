package budget_status

import (
	"context"
	"errors"

	"github.com/busanbiff/tripbudget/pkg/budget_plan"
	"github.com/busanbiff/tripbudget/pkg/expense"
)

type CategoryStatus struct {
	Category budget_plan.Category
	BudgetStatus
}

type Summary struct {
	// Categories follow budget_plan.Categories order. Empty when there is no plan.
	Categories     []CategoryStatus
	TotalBudgeted  int
	TotalSpent     int
	TotalRemaining int
	Unplanned      map[budget_plan.Category]int
}

type Service interface {
	GetSummary(ctx context.Context) (Summary, error)
}

type ServiceImpl struct {
	planService    budget_plan.Service
	expenseService expense.Service
}

func NewBudgetStatusService(planService budget_plan.Service, expenseService expense.Service) *ServiceImpl {
	return &ServiceImpl{planService: planService, expenseService: expenseService}
}

func (s *ServiceImpl) GetSummary(ctx context.Context) (Summary, error) {
	var plan *budget_plan.BudgetPlan
	current, err := s.planService.GetCurrentPlan(ctx)
	switch {
	case err == nil:
		plan = &current
	case !errors.Is(err, budget_plan.ErrPlanNotFound):
		return Summary{}, err
	}

	expenses, err := s.expenseService.ListExpenses(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(plan, expenses), nil
}

// Summarize orders ComputeStatus output and adds the totals.
func Summarize(plan *budget_plan.BudgetPlan, expenses []expense.Expense) Summary {
	statuses := ComputeStatus(plan, expenses)
	summary := Summary{
		Categories: make([]CategoryStatus, 0, len(statuses)),
		Unplanned:  UnplannedSpend(plan, expenses),
	}
	for _, category := range budget_plan.Categories {
		status, ok := statuses[category]
		if !ok {
			continue
		}
		summary.Categories = append(summary.Categories, CategoryStatus{Category: category, BudgetStatus: status})
		summary.TotalBudgeted += status.Budgeted
		summary.TotalSpent = expense.AddAmount(summary.TotalSpent, status.Spent)
	}
	summary.TotalRemaining = summary.TotalBudgeted - summary.TotalSpent
	return summary
}
