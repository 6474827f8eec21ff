package budget_status

import (
	"context"
	"errors"

	"github.com/busanbiff/tripbudget/internal/event_bus"
	"github.com/busanbiff/tripbudget/pkg/budget_plan"
	"github.com/busanbiff/tripbudget/pkg/expense"
	log "github.com/sirupsen/logrus"
)

// Alert reports a category that reached warning or over.
type Alert struct {
	UserId   int
	Category budget_plan.Category
	Status   BudgetStatus
}

// Notifier watches new expenses and new plans and logs categories running out of budget.
type Notifier struct {
	planRepo    budget_plan.Repository
	expenseRepo expense.Repository
}

func NewNotifier(planRepo budget_plan.Repository, expenseRepo expense.Repository) *Notifier {
	return &Notifier{planRepo: planRepo, expenseRepo: expenseRepo}
}

func (n *Notifier) Subscribe(bus *event_bus.EventBus) (unsubscribe func()) {
	unsubscribeExpense := event_bus.SubscribeTyped(bus, event_bus.ExpenseAddedType, func(e event_bus.EventT[event_bus.ExpenseAdded]) error {
		alert, err := n.Check(e.Context(), e.Data.UserId, budget_plan.Category(e.Data.Category))
		if err != nil {
			return err
		}
		if alert != nil {
			logAlert(*alert)
		}
		return nil
	})
	// A new plan can leave existing spend above the new budgets.
	unsubscribePlan := event_bus.SubscribeTyped(bus, event_bus.BudgetPlanCreatedType, func(e event_bus.EventT[event_bus.BudgetPlanCreated]) error {
		alerts, err := n.CheckAll(e.Context(), e.Data.UserId)
		if err != nil {
			return err
		}
		for _, alert := range alerts {
			logAlert(alert)
		}
		return nil
	})
	return func() {
		unsubscribeExpense()
		unsubscribePlan()
	}
}

// Check recomputes one category. It returns nil when the category is fine, unplanned or
// when the traveler has no plan.
func (n *Notifier) Check(ctx context.Context, userId int, category budget_plan.Category) (*Alert, error) {
	statuses, err := n.statuses(ctx, userId)
	if err != nil {
		return nil, err
	}
	status, ok := statuses[category]
	if !ok || status.Status == Good {
		return nil, nil
	}
	return &Alert{UserId: userId, Category: category, Status: status}, nil
}

// CheckAll returns an alert for every planned category in warning or over, in category order.
func (n *Notifier) CheckAll(ctx context.Context, userId int) ([]Alert, error) {
	statuses, err := n.statuses(ctx, userId)
	if err != nil {
		return nil, err
	}
	var alerts []Alert
	for _, category := range budget_plan.Categories {
		status, ok := statuses[category]
		if ok && status.Status != Good {
			alerts = append(alerts, Alert{UserId: userId, Category: category, Status: status})
		}
	}
	return alerts, nil
}

func (n *Notifier) statuses(ctx context.Context, userId int) (map[budget_plan.Category]BudgetStatus, error) {
	plan, err := n.planRepo.GetPlan(ctx, userId)
	if errors.Is(err, budget_plan.ErrPlanNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	expenses, err := n.expenseRepo.GetExpenses(ctx, userId)
	if err != nil {
		return nil, err
	}
	return ComputeStatus(&plan, expenses), nil
}

func logAlert(alert Alert) {
	log.WithFields(log.Fields{
		"user":     alert.UserId,
		"category": alert.Category,
		"spent":    alert.Status.Spent,
		"budgeted": alert.Status.Budgeted,
	}).Warnf("budget for %s is %s (%.1f%%)", alert.Category, alert.Status.Status, alert.Status.Percentage)
}
