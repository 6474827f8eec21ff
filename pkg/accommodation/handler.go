package accommodation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/busanbiff/tripbudget/internal/rest"
	"github.com/busanbiff/tripbudget/pkg/advisor"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service   Service
	validator *rest.Validator
}

func NewAccommodationHandler(service Service, validator *rest.Validator) *Handler {
	return &Handler{service: service, validator: validator}
}

// Search godoc
// @Summary Search accommodations
// @Description Asks the AI advisor for lodging around the festival, optionally limited to the plan's nightly lodging budget
// @Tags Accommodation
// @Accept json
// @Produce json
// @Param query body Query true "Search query"
// @Success 200 {object} Result
// @Failure 400 {object} rest.ErrorResponse "Invalid dates"
// @Failure 502 {object} rest.ErrorResponse "AI service failure"
// @Router /api/accommodation/search [post]
// @Security XUserId
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	log.Debug("Searching accommodations")
	var query Query
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	if err := h.validator.Validate(query); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid search query", rest.ValidationDetails(err))
		return
	}

	result, err := h.service.Search(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingDates):
			rest.WriteError(w, http.StatusBadRequest, "Invalid stay dates", err.Error())
		case errors.Is(err, advisor.ErrGeneration), errors.Is(err, advisor.ErrMalformedResponse):
			rest.WriteError(w, http.StatusBadGateway, "Accommodation search failed", err.Error())
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	rest.WriteJSON(w, http.StatusOK, result)
}
