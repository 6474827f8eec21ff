// Package itinerary asks the AI advisor for a day-by-day festival itinerary fitted to the current plan.
package itinerary

import (
	"context"
	"fmt"
	"strings"

	"github.com/busanbiff/tripbudget/pkg/advisor"
	"github.com/busanbiff/tripbudget/pkg/budget_plan"
	log "github.com/sirupsen/logrus"
)

const defaultTravelStyle = "balanced"

type Request struct {
	TravelStyle string `json:"travelStyle" validate:"max=50"`
}

type ScheduleItem struct {
	Time        string `json:"time"`
	Activity    string `json:"activity"`
	Location    string `json:"location"`
	Duration    string `json:"duration,omitempty"`
	Cost        int    `json:"cost"`
	Description string `json:"description,omitempty"`
	Tips        string `json:"tips,omitempty"`
	Transport   string `json:"transport,omitempty"`
	Category    string `json:"category,omitempty"`
}

type Day struct {
	Day         int            `json:"day"`
	Date        string         `json:"date,omitempty"`
	Theme       string         `json:"theme"`
	Schedule    []ScheduleItem `json:"schedule"`
	DailyBudget int            `json:"dailyBudget"`
	Highlights  []string       `json:"highlights,omitempty"`
}

type RecommendedMovie struct {
	Title  string `json:"title"`
	Time   string `json:"time,omitempty"`
	Venue  string `json:"venue,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type Itinerary struct {
	Itinerary         []Day              `json:"itinerary"`
	TotalBudget       int                `json:"totalBudget"`
	TravelTips        []string           `json:"travelTips"`
	RecommendedMovies []RecommendedMovie `json:"recommendedMovies,omitempty"`
	PackingChecklist  []string           `json:"packingChecklist,omitempty"`
}

type Service interface {
	Generate(ctx context.Context, request Request) (Itinerary, error)
}

type ServiceImpl struct {
	generator   advisor.Generator
	planService budget_plan.Service
}

func NewItineraryService(generator advisor.Generator, planService budget_plan.Service) *ServiceImpl {
	return &ServiceImpl{generator: generator, planService: planService}
}

// Generate returns budget_plan.ErrPlanNotFound when the traveler has no plan yet.
func (s *ServiceImpl) Generate(ctx context.Context, request Request) (Itinerary, error) {
	plan, err := s.planService.GetCurrentPlan(ctx)
	if err != nil {
		return Itinerary{}, err
	}

	style := strings.TrimSpace(request.TravelStyle)
	if style == "" {
		style = defaultTravelStyle
	}

	response, err := s.generator.Generate(ctx, buildPrompt(plan, style))
	if err != nil {
		log.Errorf("itinerary generation failed: %v", err)
		return Itinerary{}, err
	}

	var result Itinerary
	if err := advisor.DecodeJSON(response, &result); err != nil {
		log.Errorf("itinerary generation returned malformed response: %v", err)
		return Itinerary{}, err
	}
	if len(result.Itinerary) == 0 {
		return Itinerary{}, fmt.Errorf("%w: itinerary has no days", advisor.ErrMalformedResponse)
	}
	if result.TravelTips == nil {
		result.TravelTips = []string{}
	}
	return result, nil
}

func buildPrompt(plan budget_plan.BudgetPlan, style string) string {
	interests := make([]string, 0, len(plan.Interests))
	for _, interest := range plan.Interests {
		interests = append(interests, string(interest))
	}
	interestList := "none in particular"
	if len(interests) > 0 {
		interestList = strings.Join(interests, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a %d-day itinerary for a Busan International Film Festival trip as JSON.\n\n", plan.Days)
	fmt.Fprintf(&b, "Interests: %s\n", interestList)
	fmt.Fprintf(&b, "Total budget: %d KRW (%s)\n", plan.TotalBudget.Sum(), plan.Tier.Label())
	fmt.Fprintf(&b, "Travel style: %s\n", style)
	if plan.YouthPassApplied {
		b.WriteString("The traveler holds a Busan youth pass with transport, film and sightseeing discounts.\n")
	}
	b.WriteString(`
Balance screenings with sightseeing around Centum City, Haeundae, Nampo-dong and Seomyeon,
include local Busan food and prefer public transport. Costs are whole KRW.

Respond with JSON only using this schema:
{
  "itinerary": [
    {
      "day": integer, "date": "YYYY-MM-DD", "theme": string,
      "schedule": [
        {"time": "09:00", "activity": string, "location": string, "duration": string, "cost": integer,
         "description": string, "tips": string, "transport": string, "category": "film" | "sightseeing" | "food" | "shopping"}
      ],
      "dailyBudget": integer, "highlights": [string]
    }
  ],
  "totalBudget": integer,
  "travelTips": [string],
  "recommendedMovies": [{"title": string, "time": string, "venue": string, "reason": string}],
  "packingChecklist": [string]
}`)
	return b.String()
}
