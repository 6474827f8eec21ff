package itinerary

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/busanbiff/tripbudget/internal/rest"
	"github.com/busanbiff/tripbudget/pkg/advisor"
	"github.com/busanbiff/tripbudget/pkg/budget_plan"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service   Service
	validator *rest.Validator
}

func NewItineraryHandler(service Service, validator *rest.Validator) *Handler {
	return &Handler{service: service, validator: validator}
}

// Generate godoc
// @Summary Generate an itinerary for the current plan
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body Request false "Travel style"
// @Success 200 {object} Itinerary
// @Failure 404 {object} rest.ErrorResponse "No budget plan"
// @Failure 502 {object} rest.ErrorResponse "AI service failure"
// @Router /api/itinerary [post]
// @Security XUserId
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	log.Debug("Generating itinerary")
	var request Request
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	if err := h.validator.Validate(request); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid itinerary request", rest.ValidationDetails(err))
		return
	}

	result, err := h.service.Generate(r.Context(), request)
	if err != nil {
		switch {
		case errors.Is(err, budget_plan.ErrPlanNotFound):
			rest.WriteError(w, http.StatusNotFound, "Create a budget plan first", "")
		case errors.Is(err, advisor.ErrGeneration), errors.Is(err, advisor.ErrMalformedResponse):
			rest.WriteError(w, http.StatusBadGateway, "Itinerary generation failed", err.Error())
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	rest.WriteJSON(w, http.StatusOK, result)
}
