package budget_status

import (
	"testing"

	"github.com/busanbiff/tripbudget/pkg/budget_plan"
	"github.com/busanbiff/tripbudget/pkg/expense"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCsvStatusRendererImpl_Render(t *testing.T) {
	t.Run("should render categories and sum row", func(t *testing.T) {
		// given
		plan, err := budget_plan.CreateBudgetPlan(budget_plan.Low, 2, false)
		require.NoError(t, err)
		summary := Summarize(&plan, []expense.Expense{
			{Id: "1", Category: budget_plan.Food, Amount: 20000},
			{Id: "2", Category: budget_plan.Film, Amount: 15000},
		})

		// when
		csv, err := NewCsvStatusRenderer().Render(summary)

		// then
		require.NoError(t, err)
		expected := "Category,Budgeted,Spent,Remaining,Percentage,Status\n" +
			"lodging,25000,0,25000,0.0,good\n" +
			"transport,16000,0,16000,0.0,good\n" +
			"food,24000,20000,4000,83.3,warning\n" +
			"film,14000,15000,-1000,107.1,over\n" +
			"sightseeing,6000,0,6000,0.0,good\n" +
			"shopping,10000,0,10000,0.0,good\n" +
			"misc,10000,0,10000,0.0,good\n" +
			"SUM,105000,35000,70000,33.3,\n"
		assert.Equal(t, expected, csv)
	})

	t.Run("should render only header and sum without plan", func(t *testing.T) {
		// when
		csv, err := NewCsvStatusRenderer().Render(Summarize(nil, nil))

		// then
		require.NoError(t, err)
		assert.Equal(t, "Category,Budgeted,Spent,Remaining,Percentage,Status\nSUM,0,0,0,0.0,\n", csv)
	})
}
