package expense

import (
	"fmt"
	"strings"
	"time"

	"github.com/busanbiff/tripbudget/internal/rest"
	"github.com/busanbiff/tripbudget/pkg/budget_plan"
)

var draftValidator = rest.NewValidator()

func normalizeDraft(draft Draft) (Draft, budget_plan.Category, error) {
	draft.Category = strings.TrimSpace(draft.Category)
	draft.Description = strings.TrimSpace(draft.Description)
	draft.Location = strings.TrimSpace(draft.Location)
	draft.Date = strings.TrimSpace(draft.Date)

	if err := draftValidator.Validate(draft); err != nil {
		return Draft{}, "", fmt.Errorf("%w: %s", ErrInvalidExpense, rest.ValidationDetails(err))
	}
	category, err := budget_plan.ParseCategory(draft.Category)
	if err != nil {
		return Draft{}, "", fmt.Errorf("%w: %w", ErrInvalidExpense, err)
	}
	return draft, category, nil
}

// Validate checks a stored or imported expense record.
func (e Expense) Validate() error {
	switch {
	case e.Id == "":
		return fmt.Errorf("%w: missing id", ErrInvalidExpense)
	case !e.Category.Valid():
		return fmt.Errorf("%w: %w: %q", ErrInvalidExpense, budget_plan.ErrUnknownCategory, e.Category)
	case e.Amount <= 0 || e.Amount > MaxAmount:
		return fmt.Errorf("%w: amount must be between 1 and %d", ErrInvalidExpense, MaxAmount)
	case strings.TrimSpace(e.Description) == "":
		return fmt.Errorf("%w: description is required", ErrInvalidExpense)
	}
	if _, err := time.Parse(time.DateOnly, e.Date); err != nil {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidExpense, e.Date)
	}
	return nil
}
