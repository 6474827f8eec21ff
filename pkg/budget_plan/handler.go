package budget_plan

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/busanbiff/tripbudget/internal/rest"
	"github.com/busanbiff/tripbudget/pkg/recommendation"
	log "github.com/sirupsen/logrus"
)

type CreatePlanDTO struct {
	Tier         string   `json:"tier" validate:"required"`
	Days         int      `json:"days" validate:"gte=1,lte=365"`
	UseYouthPass bool     `json:"useYouthPass"`
	Interests    []string `json:"interests"`
}

type BudgetPlanDTO struct {
	Tier                    Tier                                                              `json:"tier"`
	TierLabel               string                                                            `json:"tierLabel"`
	DailyBudget             CategoryAmount                                                    `json:"dailyBudget"`
	TotalBudget             CategoryAmount                                                    `json:"totalBudget"`
	GrandTotal              int                                                               `json:"grandTotal"`
	Days                    int                                                               `json:"days"`
	YouthPassApplied        bool                                                              `json:"youthPassApplied"`
	Interests               []recommendation.Interest                                         `json:"interests"`
	InterestRecommendations map[recommendation.Interest]recommendation.InterestRecommendation `json:"interestRecommendations"`
	CreatedAt               time.Time                                                         `json:"createdAt"`
}

type TierDTO struct {
	Tier       Tier           `json:"tier"`
	Label      string         `json:"label"`
	Daily      CategoryAmount `json:"daily"`
	DailyTotal int            `json:"dailyTotal"`
}

type Handler struct {
	service   Service
	validator *rest.Validator
}

func NewBudgetPlanHandler(service Service, validator *rest.Validator) *Handler {
	return &Handler{service: service, validator: validator}
}

// ListTiers godoc
// @Summary List budget tiers
// @Description Daily amounts per category for every budget tier
// @Tags BudgetPlan
// @Produce json
// @Success 200 {array} TierDTO
// @Router /api/budgetplan/tiers [get]
func (handler *Handler) ListTiers(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing budget tiers")
	tiers := Tiers()
	tiersDTO := make([]TierDTO, 0, len(tiers))
	for _, tier := range tiers {
		tiersDTO = append(tiersDTO, TierDTO{
			Tier:       tier.Tier,
			Label:      tier.Label,
			Daily:      tier.Daily,
			DailyTotal: tier.Daily.Sum(),
		})
	}
	rest.WriteJSON(w, http.StatusOK, tiersDTO)
}

// CreatePlan godoc
// @Summary Create a budget plan
// @Description Create the budget plan of the current traveler, replacing the existing one
// @Tags BudgetPlan
// @Accept json
// @Produce json
// @Param plan body CreatePlanDTO true "Plan parameters"
// @Success 201 {object} BudgetPlanDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 403 {string} string "User not found"
// @Router /api/budgetplan [post]
// @Security XUserId
func (handler *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating budget plan")
	var planDTO CreatePlanDTO
	if err := json.NewDecoder(r.Body).Decode(&planDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	if err := handler.validator.Validate(planDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid budget plan", rest.ValidationDetails(err))
		return
	}

	interests, err := recommendation.ParseInterests(planDTO.Interests)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Unknown interest", err.Error())
		return
	}

	plan, err := handler.service.CreatePlan(r.Context(), CreatePlanRequest{
		Tier:         Tier(planDTO.Tier),
		Days:         planDTO.Days,
		UseYouthPass: planDTO.UseYouthPass,
		Interests:    interests,
	})
	if err != nil {
		if errors.Is(err, ErrUnknownTier) || errors.Is(err, ErrInvalidDays) || errors.Is(err, recommendation.ErrUnknownInterest) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid budget plan", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, PlanToDTO(plan))
}

// GetCurrentPlan godoc
// @Summary Get the budget plan
// @Tags BudgetPlan
// @Produce json
// @Success 200 {object} BudgetPlanDTO
// @Failure 403 {string} string "User not found"
// @Failure 404 {object} rest.ErrorResponse "Plan not found"
// @Router /api/budgetplan [get]
// @Security XUserId
func (handler *Handler) GetCurrentPlan(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting budget plan")
	plan, err := handler.service.GetCurrentPlan(r.Context())
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Budget plan not found", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, PlanToDTO(plan))
}

// DeletePlan godoc
// @Summary Reset the budget plan
// @Tags BudgetPlan
// @Success 204 "No Content"
// @Failure 403 {string} string "User not found"
// @Router /api/budgetplan [delete]
// @Security XUserId
func (handler *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting budget plan")
	if err := handler.service.DeletePlan(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func PlanToDTO(plan BudgetPlan) BudgetPlanDTO {
	return BudgetPlanDTO{
		Tier:                    plan.Tier,
		TierLabel:               plan.Tier.Label(),
		DailyBudget:             plan.DailyBudget,
		TotalBudget:             plan.TotalBudget,
		GrandTotal:              plan.TotalBudget.Sum(),
		Days:                    plan.Days,
		YouthPassApplied:        plan.YouthPassApplied,
		Interests:               plan.Interests,
		InterestRecommendations: plan.InterestRecommendations,
		CreatedAt:               plan.CreatedAt,
	}
}
