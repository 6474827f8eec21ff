package budget_plan

import (
	"context"
	"fmt"

	"github.com/busanbiff/tripbudget/internal/event_bus"
	"github.com/busanbiff/tripbudget/internal/utils"
	"github.com/busanbiff/tripbudget/pkg/recommendation"
	"github.com/busanbiff/tripbudget/pkg/user"
	log "github.com/sirupsen/logrus"
)

type CreatePlanRequest struct {
	Tier         Tier
	Days         int
	UseYouthPass bool
	Interests    []recommendation.Interest
}

type Service interface {
	// CreatePlan builds a new plan for the current traveler, replacing any previous one.
	CreatePlan(ctx context.Context, request CreatePlanRequest) (BudgetPlan, error)
	GetCurrentPlan(ctx context.Context) (BudgetPlan, error)
	DeletePlan(ctx context.Context) error
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
	clock    utils.Clock
}

func NewBudgetPlanService(repo Repository, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus, clock: clock}
}

func (s *ServiceImpl) CreatePlan(ctx context.Context, request CreatePlanRequest) (BudgetPlan, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return BudgetPlan{}, fmt.Errorf("failed to get current user: %w", err)
	}

	plan, err := CreateBudgetPlan(request.Tier, request.Days, request.UseYouthPass)
	if err != nil {
		return BudgetPlan{}, err
	}
	recommendations, err := recommendation.Generate(request.Interests, request.Days, request.UseYouthPass)
	if err != nil {
		return BudgetPlan{}, err
	}
	plan.Interests = uniqueInterests(request.Interests)
	plan.InterestRecommendations = recommendations
	plan.CreatedAt = s.clock.Now()

	if err := s.repo.StorePlan(ctx, userId, plan); err != nil {
		return BudgetPlan{}, err
	}
	log.Debugf("created %s budget plan for %d days (user %d)", plan.Tier, plan.Days, userId)

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.BudgetPlanCreatedType, event_bus.BudgetPlanCreated{
		UserId:           userId,
		Tier:             string(plan.Tier),
		Days:             plan.Days,
		YouthPassApplied: plan.YouthPassApplied,
	}))
	if err != nil {
		log.Errorf("failed to publish budget plan created event: %v", err)
	}
	return plan, nil
}

func (s *ServiceImpl) GetCurrentPlan(ctx context.Context) (BudgetPlan, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return BudgetPlan{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetPlan(ctx, userId)
}

func (s *ServiceImpl) DeletePlan(ctx context.Context) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	if err := s.repo.DeletePlan(ctx, userId); err != nil {
		return err
	}

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.BudgetPlanDeletedType, event_bus.BudgetPlanDeleted{UserId: userId}))
	if err != nil {
		log.Errorf("failed to publish budget plan deleted event: %v", err)
	}
	return nil
}

func uniqueInterests(interests []recommendation.Interest) []recommendation.Interest {
	unique := make([]recommendation.Interest, 0, len(interests))
	seen := make(map[recommendation.Interest]bool, len(interests))
	for _, interest := range interests {
		if !seen[interest] {
			seen[interest] = true
			unique = append(unique, interest)
		}
	}
	return unique
}
