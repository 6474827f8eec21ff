package budget_plan

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/busanbiff/tripbudget/pkg/recommendation"
)

var (
	ErrUnknownTier     = errors.New("unknown budget tier")
	ErrInvalidDays     = errors.New("days must be between 1 and 365")
	ErrUnknownCategory = errors.New("unknown category")
	ErrPlanNotFound    = errors.New("budget plan not found")
	ErrInvalidPlan     = errors.New("invalid budget plan")
)

// MaxDays is the longest trip a plan can cover.
const MaxDays = recommendation.MaxDays

type Category string

const (
	Lodging     Category = "lodging"
	Transport   Category = "transport"
	Food        Category = "food"
	Film        Category = "film"
	Sightseeing Category = "sightseeing"
	Shopping    Category = "shopping"
	Misc        Category = "misc"
)

// Categories lists every spending bucket in display order.
var Categories = []Category{Lodging, Transport, Food, Film, Sightseeing, Shopping, Misc}

func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
	}
	return c, nil
}

// CategoryAmount maps every category to a non-negative amount in KRW.
type CategoryAmount map[Category]int

func (a CategoryAmount) Clone() CategoryAmount {
	return maps.Clone(a)
}

func (a CategoryAmount) Sum() int {
	sum := 0
	for _, amount := range a {
		sum += amount
	}
	return sum
}

type BudgetPlan struct {
	Tier                    Tier                                                              `json:"tier"`
	DailyBudget             CategoryAmount                                                    `json:"dailyBudget"`
	TotalBudget             CategoryAmount                                                    `json:"totalBudget"`
	Days                    int                                                               `json:"days"`
	YouthPassApplied        bool                                                              `json:"youthPassApplied"`
	Interests               []recommendation.Interest                                         `json:"interests"`
	InterestRecommendations map[recommendation.Interest]recommendation.InterestRecommendation `json:"interestRecommendations"`
	CreatedAt               time.Time                                                         `json:"createdAt"`
}

// Validate checks a plan that did not come from CreateBudgetPlan, e.g. an imported one.
// Daily amounts must match the tier template so that totals are derived from known values.
func (p BudgetPlan) Validate() error {
	if !p.Tier.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidPlan, ErrUnknownTier, p.Tier)
	}
	if p.Days < 1 || p.Days > MaxDays {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidPlan, ErrInvalidDays, p.Days)
	}
	expected, err := CreateBudgetPlan(p.Tier, p.Days, p.YouthPassApplied)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}
	if len(p.DailyBudget) != len(Categories) || len(p.TotalBudget) != len(Categories) {
		return fmt.Errorf("%w: unexpected categories", ErrInvalidPlan)
	}
	for _, c := range Categories {
		daily, ok := p.DailyBudget[c]
		if !ok || daily != expected.DailyBudget[c] {
			return fmt.Errorf("%w: daily amount for %s does not match the %s tier", ErrInvalidPlan, c, p.Tier)
		}
		if total, ok := p.TotalBudget[c]; !ok || total != expected.TotalBudget[c] {
			return fmt.Errorf("%w: total for %s does not match daily amount and days", ErrInvalidPlan, c)
		}
	}
	for _, interest := range p.Interests {
		if !interest.Valid() {
			return fmt.Errorf("%w: %w: %q", ErrInvalidPlan, recommendation.ErrUnknownInterest, interest)
		}
	}
	return nil
}
