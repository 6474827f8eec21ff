package expense

import (
	"errors"
	"math"
	"time"

	"github.com/busanbiff/tripbudget/pkg/budget_plan"
)

var ErrInvalidExpense = errors.New("invalid expense")

// MaxAmount is the largest single expense accepted, in KRW.
const MaxAmount = 1_000_000_000

type Expense struct {
	Id          string               `json:"id"`
	Category    budget_plan.Category `json:"category"`
	Amount      int                  `json:"amount"`
	Description string               `json:"description"`
	Location    string               `json:"location,omitempty"`
	Date        string               `json:"date"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// Draft is the user input for a new expense. Date defaults to today when empty.
type Draft struct {
	Category    string `validate:"required"`
	Amount      int    `validate:"gt=0,lte=1000000000"`
	Description string `validate:"required"`
	Location    string
	Date        string `validate:"omitempty,datetime=2006-01-02"`
}

// SumByCategory adds up expense amounts per category.
func SumByCategory(expenses []Expense) map[budget_plan.Category]int {
	sums := make(map[budget_plan.Category]int)
	for _, e := range expenses {
		sums[e.Category] = AddAmount(sums[e.Category], e.Amount)
	}
	return sums
}

// AddAmount adds two non-negative amounts, saturating at math.MaxInt.
func AddAmount(sum, amount int) int {
	if amount > math.MaxInt-sum {
		return math.MaxInt
	}
	return sum + amount
}
