package budget_status

import (
	"github.com/busanbiff/tripbudget/pkg/budget_plan"
	"github.com/busanbiff/tripbudget/pkg/expense"
)

type Level string

const (
	Good    Level = "good"
	Warning Level = "warning"
	Over    Level = "over"
)

// warningPercent is the share of the budget above which a category is in warning.
const warningPercent = 80

type BudgetStatus struct {
	Budgeted   int     `json:"budgeted"`
	Spent      int     `json:"spent"`
	Remaining  int     `json:"remaining"`
	Percentage float64 `json:"percentage"`
	Status     Level   `json:"status"`
}

// ComputeStatus compares spend against the plan for every planned category. Expenses in
// categories the plan does not budget are left out; see UnplannedSpend. A nil plan yields
// an empty result.
func ComputeStatus(plan *budget_plan.BudgetPlan, expenses []expense.Expense) map[budget_plan.Category]BudgetStatus {
	result := make(map[budget_plan.Category]BudgetStatus)
	if plan == nil {
		return result
	}
	spent := expense.SumByCategory(expenses)
	for category, budgeted := range plan.TotalBudget {
		result[category] = newStatus(budgeted, spent[category])
	}
	return result
}

// UnplannedSpend sums expenses whose category has no entry in the plan.
func UnplannedSpend(plan *budget_plan.BudgetPlan, expenses []expense.Expense) map[budget_plan.Category]int {
	unplanned := make(map[budget_plan.Category]int)
	for _, e := range expenses {
		if plan != nil {
			if _, planned := plan.TotalBudget[e.Category]; planned {
				continue
			}
		}
		unplanned[e.Category] = expense.AddAmount(unplanned[e.Category], e.Amount)
	}
	return unplanned
}

func newStatus(budgeted, spent int) BudgetStatus {
	status := BudgetStatus{
		Budgeted:  budgeted,
		Spent:     spent,
		Remaining: budgeted - spent,
		Status:    classify(budgeted, spent),
	}
	if budgeted != 0 {
		status.Percentage = float64(spent) * 100 / float64(budgeted)
	}
	return status
}

// classify compares in integers so that exactly 80% stays good.
func classify(budgeted, spent int) Level {
	switch {
	case spent > budgeted:
		return Over
	case spent > warningThreshold(budgeted):
		return Warning
	default:
		return Good
	}
}

// warningThreshold is floor(budgeted*80/100), computed without overflowing for large budgets.
func warningThreshold(budgeted int) int {
	return budgeted/100*warningPercent + budgeted%100*warningPercent/100
}
