package expense

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/busanbiff/tripbudget/internal/event_bus"
	"github.com/busanbiff/tripbudget/internal/utils"
	"github.com/busanbiff/tripbudget/pkg/budget_plan"
	"github.com/busanbiff/tripbudget/pkg/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1, Uid: "uid-1", Username: "traveler"})

var expenseRepoStub = NewStubExpenseRepo()

var clock *utils.MockClock

var eventBus *event_bus.EventBus

var service Service

func setup(t *testing.T) func() {
	clock = &utils.MockClock{FixedNow: time.Date(2026, 10, 3, 14, 30, 0, 0, time.UTC)}
	eventBus = event_bus.NewEventBus()
	service = NewExpenseService(expenseRepoStub, eventBus, clock)
	return func() {
		t.Log("Teardown after test")
		expenseRepoStub.Cleanup()
	}
}

func TestServiceImpl_AddExpense(t *testing.T) {
	t.Run("should add expense with generated id and today's date", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		expense, err := service.AddExpense(ctx, Draft{Category: "food", Amount: 20000, Description: " Dwaeji gukbap ", Location: "Seomyeon"})

		// then
		require.NoError(t, err)
		parsed, err := uuid.Parse(expense.Id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), parsed.Version())
		assert.Equal(t, budget_plan.Food, expense.Category)
		assert.Equal(t, "Dwaeji gukbap", expense.Description)
		assert.Equal(t, "2026-10-03", expense.Date)
		assert.Equal(t, clock.Now(), expense.CreatedAt)

		expenses, err := service.ListExpenses(ctx)
		require.NoError(t, err)
		assert.Equal(t, []Expense{expense}, expenses)
	})

	t.Run("should keep the given date", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		expense, err := service.AddExpense(ctx, Draft{Category: "film", Amount: 9000, Description: "BIFF ticket", Date: "2026-10-05"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "2026-10-05", expense.Date)
	})

	t.Run("should keep insertion order and unique ids", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		first, err := service.AddExpense(ctx, Draft{Category: "transport", Amount: 1500, Description: "Subway"})
		require.NoError(t, err)
		clock.Advance(time.Minute)
		second, err := service.AddExpense(ctx, Draft{Category: "transport", Amount: 1500, Description: "Subway"})
		require.NoError(t, err)

		// then
		expenses, err := service.ListExpenses(ctx)
		require.NoError(t, err)
		require.Len(t, expenses, 2)
		assert.Equal(t, first.Id, expenses[0].Id)
		assert.Equal(t, second.Id, expenses[1].Id)
		assert.NotEqual(t, first.Id, second.Id)
	})

	t.Run("should reject invalid drafts and leave ledger unchanged", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		drafts := []Draft{
			{Category: "food", Amount: 0, Description: "free"},
			{Category: "food", Amount: -5, Description: "refund"},
			{Category: "food", Amount: MaxAmount + 1, Description: "banquet"},
			{Category: "food", Amount: math.MaxInt/2 + 1, Description: "banquet"},
			{Category: "food", Amount: 100, Description: "   "},
			{Category: "gambling", Amount: 100, Description: "casino"},
			{Category: "", Amount: 100, Description: "nothing"},
			{Category: "food", Amount: 100, Description: "bad date", Date: "05/10/2026"},
		}
		for _, draft := range drafts {
			// when
			_, err := service.AddExpense(ctx, draft)

			// then
			assert.ErrorIs(t, err, ErrInvalidExpense, "%+v", draft)
		}
		expenses, err := service.ListExpenses(ctx)
		require.NoError(t, err)
		assert.Empty(t, expenses)
		assert.Equal(t, 0, expenseRepoStub.Stores)
	})

	t.Run("should publish expense added event", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		var received []event_bus.ExpenseAdded
		event_bus.SubscribeTyped(eventBus, event_bus.ExpenseAddedType, func(e event_bus.EventT[event_bus.ExpenseAdded]) error {
			received = append(received, e.Data)
			return nil
		})

		// when
		expense, err := service.AddExpense(ctx, Draft{Category: "shopping", Amount: 8000, Description: "BIFF tote bag"})

		// then
		require.NoError(t, err)
		require.Len(t, received, 1)
		assert.Equal(t, event_bus.ExpenseAdded{UserId: 1, Id: expense.Id, Category: "shopping", Amount: 8000}, received[0])
	})

	t.Run("should not lose concurrent additions", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := service.AddExpense(ctx, Draft{Category: "misc", Amount: 100, Description: "locker"})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		// then
		expenses, err := service.ListExpenses(ctx)
		require.NoError(t, err)
		assert.Len(t, expenses, 50)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.AddExpense(context.Background(), Draft{Category: "food", Amount: 1, Description: "x"})

		// then
		assert.ErrorIs(t, err, user.ErrNoUser)
	})
}

func TestServiceImpl_DeleteExpense(t *testing.T) {
	t.Run("should delete an existing expense", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		first, err := service.AddExpense(ctx, Draft{Category: "food", Amount: 9000, Description: "Milmyeon"})
		require.NoError(t, err)
		second, err := service.AddExpense(ctx, Draft{Category: "food", Amount: 6000, Description: "Ssiat hotteok"})
		require.NoError(t, err)
		var deleted []event_bus.ExpenseDeleted
		event_bus.SubscribeTyped(eventBus, event_bus.ExpenseDeletedType, func(e event_bus.EventT[event_bus.ExpenseDeleted]) error {
			deleted = append(deleted, e.Data)
			return nil
		})

		// when
		err = service.DeleteExpense(ctx, first.Id)

		// then
		require.NoError(t, err)
		expenses, err := service.ListExpenses(ctx)
		require.NoError(t, err)
		assert.Equal(t, []Expense{second}, expenses)
		require.Len(t, deleted, 1)
		assert.Equal(t, first.Id, deleted[0].Id)
	})

	t.Run("should ignore unknown id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		existing, err := service.AddExpense(ctx, Draft{Category: "food", Amount: 9000, Description: "Milmyeon"})
		require.NoError(t, err)
		storesBefore := expenseRepoStub.Stores

		// when
		err = service.DeleteExpense(ctx, "does-not-exist")

		// then
		assert.NoError(t, err)
		expenses, err := service.ListExpenses(ctx)
		require.NoError(t, err)
		assert.Equal(t, []Expense{existing}, expenses)
		assert.Equal(t, storesBefore, expenseRepoStub.Stores)
	})
}

func TestServiceImpl_ReplaceExpenses(t *testing.T) {
	replacement := []Expense{
		{Id: "0192f0a0-0000-7000-8000-00000000000a", Category: budget_plan.Film, Amount: 7000, Description: "Midnight screening", Date: "2026-10-04"},
	}

	t.Run("should replace the ledger and run commit", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.AddExpense(ctx, Draft{Category: "food", Amount: 9000, Description: "Milmyeon"})
		require.NoError(t, err)
		committed := false

		// when
		err = service.ReplaceExpenses(ctx, replacement, func() error {
			committed = true
			return nil
		})

		// then
		require.NoError(t, err)
		assert.True(t, committed)
		expenses, err := service.ListExpenses(ctx)
		require.NoError(t, err)
		assert.Equal(t, replacement, expenses)
	})

	t.Run("should restore previous ledger when commit fails", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		existing, err := service.AddExpense(ctx, Draft{Category: "food", Amount: 9000, Description: "Milmyeon"})
		require.NoError(t, err)
		commitErr := errors.New("plan store unavailable")

		// when
		err = service.ReplaceExpenses(ctx, replacement, func() error { return commitErr })

		// then
		assert.ErrorIs(t, err, commitErr)
		expenses, err := service.ListExpenses(ctx)
		require.NoError(t, err)
		assert.Equal(t, []Expense{existing}, expenses)
	})

	t.Run("should not run commit when the ledger cannot be stored", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		storeErr := errors.New("store unavailable")
		expenseRepoStub.StoreErr = storeErr
		committed := false

		// when
		err := service.ReplaceExpenses(ctx, replacement, func() error {
			committed = true
			return nil
		})

		// then
		assert.ErrorIs(t, err, storeErr)
		assert.False(t, committed)
	})
}
