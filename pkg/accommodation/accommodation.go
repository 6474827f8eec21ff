// Package accommodation searches lodging around the festival venues through the AI advisor.
package accommodation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/busanbiff/tripbudget/pkg/advisor"
	"github.com/busanbiff/tripbudget/pkg/budget_plan"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

var ErrMissingDates = errors.New("check-in and check-out dates are required and check-out must be after check-in")

type Query struct {
	CheckIn      string `json:"checkIn" validate:"required,datetime=2006-01-02"`
	CheckOut     string `json:"checkOut" validate:"required,datetime=2006-01-02"`
	Location     string `json:"location" validate:"max=100"`
	PriceRange   string `json:"priceRange" validate:"max=100"`
	WithinBudget bool   `json:"withinBudget"`
}

type BookingSite struct {
	Site  string `json:"site"`
	Price int    `json:"price"`
	Url   string `json:"url"`
}

type Accommodation struct {
	Id                string            `json:"id"`
	Name              string            `json:"name"`
	Type              string            `json:"type"`
	Location          string            `json:"location"`
	DistanceToCinema  map[string]string `json:"distanceToCinema,omitempty"`
	PricePerNight     int               `json:"pricePerNight"`
	OriginalPrice     int               `json:"originalPrice,omitempty"`
	DiscountRate      float64           `json:"discountRate,omitempty"`
	Rating            float64           `json:"rating,omitempty"`
	ReviewCount       int               `json:"reviewCount,omitempty"`
	Amenities         []string          `json:"amenities,omitempty"`
	RoomType          string            `json:"roomType,omitempty"`
	Address           string            `json:"address,omitempty"`
	Phone             string            `json:"phone,omitempty"`
	BookingSites      []BookingSite     `json:"bookingSites,omitempty"`
	CheckInTime       string            `json:"checkInTime,omitempty"`
	CheckOutTime      string            `json:"checkOutTime,omitempty"`
	Cancellation      string            `json:"cancellation,omitempty"`
	BreakfastIncluded bool              `json:"breakfastIncluded"`
	NearAttractions   []string          `json:"nearAttractions,omitempty"`
}

// Result carries the plan's daily lodging amount as NightlyBudget, zero without a plan.
type Result struct {
	Accommodations []Accommodation `json:"accommodations"`
	NightlyBudget  int             `json:"nightlyBudget,omitempty"`
}

type Service interface {
	Search(ctx context.Context, query Query) (Result, error)
}

type ServiceImpl struct {
	generator   advisor.Generator
	planService budget_plan.Service
}

func NewAccommodationService(generator advisor.Generator, planService budget_plan.Service) *ServiceImpl {
	return &ServiceImpl{generator: generator, planService: planService}
}

func (s *ServiceImpl) Search(ctx context.Context, query Query) (Result, error) {
	nights, err := stayNights(query)
	if err != nil {
		return Result{}, err
	}

	var nightlyBudget int
	plan, err := s.planService.GetCurrentPlan(ctx)
	switch {
	case err == nil:
		nightlyBudget = plan.DailyBudget[budget_plan.Lodging]
	case !errors.Is(err, budget_plan.ErrPlanNotFound):
		return Result{}, err
	}

	response, err := s.generator.Generate(ctx, buildPrompt(query, nights, nightlyBudget))
	if err != nil {
		log.Errorf("accommodation search failed: %v", err)
		return Result{}, err
	}

	var decoded struct {
		Accommodations []Accommodation `json:"accommodations"`
	}
	if err := advisor.DecodeJSON(response, &decoded); err != nil {
		log.Errorf("accommodation search returned malformed response: %v", err)
		return Result{}, err
	}

	accommodations := decoded.Accommodations
	if query.WithinBudget && nightlyBudget > 0 {
		accommodations = withinBudget(accommodations, nightlyBudget)
	}
	if accommodations == nil {
		accommodations = []Accommodation{}
	}
	return Result{Accommodations: accommodations, NightlyBudget: nightlyBudget}, nil
}

func stayNights(query Query) (int, error) {
	if strings.TrimSpace(query.CheckIn) == "" || strings.TrimSpace(query.CheckOut) == "" {
		return 0, ErrMissingDates
	}
	checkIn, err := time.Parse(dateLayout, strings.TrimSpace(query.CheckIn))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMissingDates, err)
	}
	checkOut, err := time.Parse(dateLayout, strings.TrimSpace(query.CheckOut))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMissingDates, err)
	}
	if !checkOut.After(checkIn) {
		return 0, ErrMissingDates
	}
	return int(checkOut.Sub(checkIn).Hours() / 24), nil
}

func withinBudget(accommodations []Accommodation, nightlyBudget int) []Accommodation {
	filtered := make([]Accommodation, 0, len(accommodations))
	for _, a := range accommodations {
		if a.PricePerNight <= nightlyBudget {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

func orAny(value string) string {
	if strings.TrimSpace(value) == "" {
		return "any"
	}
	return value
}

func buildPrompt(query Query, nights int, nightlyBudget int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest 8-10 places to stay in Busan during the Busan International Film Festival as JSON.\n\n")
	fmt.Fprintf(&b, "Check-in: %s, check-out: %s (%d nights)\n", query.CheckIn, query.CheckOut, nights)
	fmt.Fprintf(&b, "Area: %s\n", orAny(query.Location))
	fmt.Fprintf(&b, "Price range: %s\n", orAny(query.PriceRange))
	if nightlyBudget > 0 {
		fmt.Fprintf(&b, "Traveler's lodging budget: %d KRW per night\n", nightlyBudget)
	}
	b.WriteString(`
Consider access to the festival cinemas (Busan Cinema Center, Lotte Cinema Centum City, CGV Centum City)
and the areas Haeundae, Seomyeon, Nampo-dong and Centum City. Prices are whole KRW.

Respond with JSON only using this schema:
{
  "accommodations": [
    {
      "id": string, "name": string, "type": "hotel" | "motel" | "guesthouse" | "pension",
      "location": string, "distanceToCinema": {"Busan Cinema Center": "5 min walk"},
      "pricePerNight": integer, "originalPrice": integer, "discountRate": number,
      "rating": number, "reviewCount": integer, "amenities": [string], "roomType": string,
      "address": string, "phone": string,
      "bookingSites": [{"site": string, "price": integer, "url": string}],
      "checkInTime": "15:00", "checkOutTime": "11:00", "cancellation": string,
      "breakfastIncluded": boolean, "nearAttractions": [string]
    }
  ]
}`)
	return b.String()
}
