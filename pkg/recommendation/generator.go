package recommendation

import (
	"errors"
	"fmt"
	"slices"
)

// MaxDays bounds trip length so that scaled amounts stay well inside int.
const MaxDays = 365

var ErrInvalidDays = errors.New("days must be between 1 and 365")

type InterestRecommendation struct {
	Description       string         `json:"description"`
	Items             []string       `json:"items"`
	DailyAmount       int            `json:"dailyAmount"`
	TotalAmount       int            `json:"totalAmount"`
	DetailedBreakdown map[string]int `json:"detailedBreakdown"`
	Tips              []string       `json:"tips"`
	RecommendedSpots  []string       `json:"recommendedSpots"`
}

// Generate builds a recommendation for each interest, scaled by days. The catalog is never
// handed out directly; every result owns its slices and maps.
func Generate(interests []Interest, days int, useYouthPass bool) (map[Interest]InterestRecommendation, error) {
	if days < 1 || days > MaxDays {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDays, days)
	}
	result := make(map[Interest]InterestRecommendation, len(interests))
	for _, interest := range interests {
		entry, ok := catalog[interest]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownInterest, interest)
		}
		if _, done := result[interest]; done {
			continue
		}
		result[interest] = entry.recommend(days, useYouthPass)
	}
	return result, nil
}

func (e catalogEntry) recommend(days int, useYouthPass bool) InterestRecommendation {
	daily := e.dailyAmount.pick(useYouthPass)
	breakdown := make(map[string]int, len(e.breakdown))
	for _, item := range e.breakdown {
		breakdown[item.name] = item.amount.pick(useYouthPass)
	}
	return InterestRecommendation{
		Description:       e.description,
		Items:             slices.Clone(e.items),
		DailyAmount:       daily,
		TotalAmount:       daily * days,
		DetailedBreakdown: breakdown,
		Tips:              slices.Clone(e.tips),
		RecommendedSpots:  slices.Clone(e.recommendedSpots),
	}
}
