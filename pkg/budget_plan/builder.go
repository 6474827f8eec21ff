package budget_plan

import "fmt"

// CreateBudgetPlan derives daily and total budgets for a trip. Lodging is charged per
// night, so a trip of n days pays n-1 nights.
func CreateBudgetPlan(tier Tier, days int, useYouthPass bool) (BudgetPlan, error) {
	daily, err := Template(tier)
	if err != nil {
		return BudgetPlan{}, err
	}
	if days < 1 || days > MaxDays {
		return BudgetPlan{}, fmt.Errorf("%w: got %d", ErrInvalidDays, days)
	}
	if useYouthPass {
		daily = ApplyYouthPass(daily)
	}

	total := make(CategoryAmount, len(daily))
	for category, amount := range daily {
		total[category] = amount * chargedDays(category, days)
	}

	return BudgetPlan{
		Tier:             tier,
		DailyBudget:      daily,
		TotalBudget:      total,
		Days:             days,
		YouthPassApplied: useYouthPass,
	}, nil
}

func chargedDays(category Category, days int) int {
	if category == Lodging {
		return max(days-1, 0)
	}
	return days
}
