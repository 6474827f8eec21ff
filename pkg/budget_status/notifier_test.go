package budget_status

import (
	"context"
	"testing"

	"github.com/busanbiff/tripbudget/pkg/budget_plan"
	"github.com/busanbiff/tripbudget/pkg/expense"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_Check(t *testing.T) {
	t.Run("should return nil without plan", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		notifier := NewNotifier(planRepoStub, expenseRepoStub)

		// when
		alert, err := notifier.Check(context.Background(), 1, budget_plan.Food)

		// then
		require.NoError(t, err)
		assert.Nil(t, alert)
	})

	t.Run("should alert when category reaches warning", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		notifier := NewNotifier(planRepoStub, expenseRepoStub)

		// given
		_, err := planService.CreatePlan(ctx, budget_plan.CreatePlanRequest{Tier: budget_plan.Low, Days: 2})
		require.NoError(t, err)
		_, err = expenseService.AddExpense(ctx, expense.Draft{Category: "food", Amount: 20000, Description: "Seafood"})
		require.NoError(t, err)

		// when
		alert, err := notifier.Check(context.Background(), 1, budget_plan.Food)

		// then
		require.NoError(t, err)
		require.NotNil(t, alert)
		assert.Equal(t, Warning, alert.Status.Status)
		assert.Equal(t, 1, alert.UserId)
	})
}

func TestNotifier_Subscribe(t *testing.T) {
	teardown := setup(t)
	defer teardown()
	hook := test.NewGlobal()
	defer hook.Reset()

	// given
	unsubscribe := NewNotifier(planRepoStub, expenseRepoStub).Subscribe(eventBus)
	defer unsubscribe()
	_, err := planService.CreatePlan(ctx, budget_plan.CreatePlanRequest{Tier: budget_plan.Low, Days: 2})
	require.NoError(t, err)

	// when
	_, err = expenseService.AddExpense(ctx, expense.Draft{Category: "film", Amount: 15000, Description: "Gala screening"})
	require.NoError(t, err)

	// then
	var warnings []*log.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Level == log.WarnLevel {
			warnings = append(warnings, entry)
		}
	}
	require.Len(t, warnings, 1)
	assert.Equal(t, budget_plan.Film, warnings[0].Data["category"])
	assert.Contains(t, warnings[0].Message, "over")
}

func TestNotifier_CheckAll(t *testing.T) {
	t.Run("should return nothing without plan", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		alerts, err := NewNotifier(planRepoStub, expenseRepoStub).CheckAll(context.Background(), 1)

		// then
		require.NoError(t, err)
		assert.Empty(t, alerts)
	})

	t.Run("should alert every category out of budget in order", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := planService.CreatePlan(ctx, budget_plan.CreatePlanRequest{Tier: budget_plan.Low, Days: 2})
		require.NoError(t, err)
		_, err = expenseService.AddExpense(ctx, expense.Draft{Category: "film", Amount: 15000, Description: "Gala screening"})
		require.NoError(t, err)
		_, err = expenseService.AddExpense(ctx, expense.Draft{Category: "food", Amount: 20000, Description: "Seafood"})
		require.NoError(t, err)

		// when
		alerts, err := NewNotifier(planRepoStub, expenseRepoStub).CheckAll(context.Background(), 1)

		// then
		require.NoError(t, err)
		require.Len(t, alerts, 2)
		assert.Equal(t, budget_plan.Food, alerts[0].Category)
		assert.Equal(t, Warning, alerts[0].Status.Status)
		assert.Equal(t, budget_plan.Film, alerts[1].Category)
		assert.Equal(t, Over, alerts[1].Status.Status)
	})
}

func TestNotifier_Subscribe_PlanCreated(t *testing.T) {
	teardown := setup(t)
	defer teardown()
	hook := test.NewGlobal()
	defer hook.Reset()

	// given spend recorded before any plan exists
	unsubscribe := NewNotifier(planRepoStub, expenseRepoStub).Subscribe(eventBus)
	defer unsubscribe()
	_, err := expenseService.AddExpense(ctx, expense.Draft{Category: "film", Amount: 15000, Description: "Gala screening"})
	require.NoError(t, err)

	// when
	_, err = planService.CreatePlan(ctx, budget_plan.CreatePlanRequest{Tier: budget_plan.Low, Days: 2})
	require.NoError(t, err)

	// then
	var warnings []*log.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Level == log.WarnLevel {
			warnings = append(warnings, entry)
		}
	}
	require.Len(t, warnings, 1)
	assert.Equal(t, budget_plan.Film, warnings[0].Data["category"])
	assert.Contains(t, warnings[0].Message, "over")
}
