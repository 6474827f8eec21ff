package itinerary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/busanbiff/tripbudget/internal/event_bus"
	"github.com/busanbiff/tripbudget/internal/rest"
	"github.com/busanbiff/tripbudget/internal/utils"
	"github.com/busanbiff/tripbudget/pkg/advisor"
	"github.com/busanbiff/tripbudget/pkg/budget_plan"
	"github.com/busanbiff/tripbudget/pkg/recommendation"
	"github.com/busanbiff/tripbudget/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1, Uid: "uid-1"})

var generator = &advisor.StubGenerator{}

var planRepo = budget_plan.NewStubBudgetPlanRepo()

var planService *budget_plan.ServiceImpl

var service Service

const twoDays = `Sure! {"itinerary":[
	{"day":1,"date":"2026-10-02","theme":"Opening night","schedule":[{"time":"19:00","activity":"Opening ceremony","location":"Busan Cinema Center","cost":0}],"dailyBudget":60000},
	{"day":2,"theme":"Haeundae","schedule":[],"dailyBudget":55000}
],"totalBudget":115000,"travelTips":["Buy tickets early"]}`

func setup(t *testing.T) func() {
	clock := &utils.MockClock{FixedNow: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)}
	planService = budget_plan.NewBudgetPlanService(planRepo, event_bus.NewEventBus(), clock)
	service = NewItineraryService(generator, planService)
	return func() {
		t.Log("Teardown after test")
		planRepo.Cleanup()
		generator.Cleanup()
	}
}

func TestServiceImpl_Generate(t *testing.T) {
	t.Run("should require a plan", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Generate(ctx, Request{})

		assert.ErrorIs(t, err, budget_plan.ErrPlanNotFound)
		assert.Empty(t, generator.Prompts)
	})

	t.Run("should build prompt from plan and decode itinerary", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := planService.CreatePlan(ctx, budget_plan.CreatePlanRequest{
			Tier:      budget_plan.Low,
			Days:      2,
			Interests: []recommendation.Interest{recommendation.Movie, recommendation.Cafe},
		})
		require.NoError(t, err)
		generator.Response = twoDays

		// when
		result, err := service.Generate(ctx, Request{TravelStyle: "relaxed"})

		// then
		require.NoError(t, err)
		require.Len(t, result.Itinerary, 2)
		assert.Equal(t, "Opening night", result.Itinerary[0].Theme)
		assert.Equal(t, 115000, result.TotalBudget)
		assert.Equal(t, []string{"Buy tickets early"}, result.TravelTips)

		prompt := generator.LastPrompt()
		assert.Contains(t, prompt, "2-day itinerary")
		assert.Contains(t, prompt, "Interests: movie, cafe")
		assert.Contains(t, prompt, "Total budget: 105000 KRW")
		assert.Contains(t, prompt, "Travel style: relaxed")
		assert.NotContains(t, prompt, "youth pass")
	})

	t.Run("should default travel style and mention youth pass", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := planService.CreatePlan(ctx, budget_plan.CreatePlanRequest{Tier: budget_plan.Medium, Days: 1, UseYouthPass: true})
		require.NoError(t, err)
		generator.Response = twoDays

		// when
		_, err = service.Generate(ctx, Request{TravelStyle: "  "})

		// then
		require.NoError(t, err)
		assert.Contains(t, generator.LastPrompt(), "Travel style: balanced")
		assert.Contains(t, generator.LastPrompt(), "Interests: none in particular")
		assert.Contains(t, generator.LastPrompt(), "youth pass")
	})

	t.Run("should reject empty itinerary", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := planService.CreatePlan(ctx, budget_plan.CreatePlanRequest{Tier: budget_plan.Low, Days: 2})
		require.NoError(t, err)
		generator.Response = `{"itinerary":[],"totalBudget":0}`

		// when
		_, err = service.Generate(ctx, Request{})

		// then
		assert.ErrorIs(t, err, advisor.ErrMalformedResponse)
	})
}

func TestHandler_Generate(t *testing.T) {
	t.Run("should return 404 without plan", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		handler := NewItineraryHandler(service, rest.NewValidator())
		req := httptest.NewRequest(http.MethodPost, "/api/itinerary", nil).WithContext(ctx)
		rr := httptest.NewRecorder()

		handler.Generate(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("should return itinerary", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := planService.CreatePlan(ctx, budget_plan.CreatePlanRequest{Tier: budget_plan.High, Days: 2})
		require.NoError(t, err)
		generator.Response = twoDays
		handler := NewItineraryHandler(service, rest.NewValidator())
		req := httptest.NewRequest(http.MethodPost, "/api/itinerary", strings.NewReader(`{"travelStyle":"packed"}`)).WithContext(ctx)
		rr := httptest.NewRecorder()

		// when
		handler.Generate(rr, req)

		// then
		require.Equal(t, http.StatusOK, rr.Code)
		var result Itinerary
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		assert.Len(t, result.Itinerary, 2)
	})

	t.Run("should return 502 for malformed response", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := planService.CreatePlan(ctx, budget_plan.CreatePlanRequest{Tier: budget_plan.High, Days: 2})
		require.NoError(t, err)
		generator.Response = "no idea"
		handler := NewItineraryHandler(service, rest.NewValidator())
		req := httptest.NewRequest(http.MethodPost, "/api/itinerary", strings.NewReader(`{}`)).WithContext(ctx)
		rr := httptest.NewRecorder()

		// when
		handler.Generate(rr, req)

		// then
		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})
}
