package recommendation

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/busanbiff/tripbudget/internal/rest"
	log "github.com/sirupsen/logrus"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Preview godoc
// @Summary Preview interest recommendations
// @Description Cost breakdown, tips and spots for the given interests, scaled by trip length
// @Tags Recommendation
// @Produce json
// @Param interests query string true "Comma separated interests"
// @Param days query int true "Trip length in days"
// @Param youthPass query bool false "Apply youth pass prices"
// @Success 200 {object} map[string]InterestRecommendation
// @Failure 400 {object} rest.ErrorResponse "Invalid query"
// @Router /api/recommendation [get]
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	log.Debug("Previewing interest recommendations")
	query := r.URL.Query()

	days, err := strconv.Atoi(query.Get("days"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid days", "days must be an integer")
		return
	}
	youthPass := false
	if raw := query.Get("youthPass"); raw != "" {
		youthPass, err = strconv.ParseBool(raw)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid youthPass", "youthPass must be true or false")
			return
		}
	}

	interests, err := ParseInterests(strings.Split(query.Get("interests"), ","))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Unknown interest", err.Error())
		return
	}

	recommendations, err := Generate(interests, days, youthPass)
	if err != nil {
		if errors.Is(err, ErrInvalidDays) || errors.Is(err, ErrUnknownInterest) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, recommendations)
}
