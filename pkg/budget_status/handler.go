package budget_status

import (
	"net/http"

	"github.com/busanbiff/tripbudget/internal/rest"
	"github.com/busanbiff/tripbudget/pkg/budget_plan"
	log "github.com/sirupsen/logrus"
)

type CategoryStatusDTO struct {
	Category   budget_plan.Category `json:"category"`
	Budgeted   int                  `json:"budgeted"`
	Spent      int                  `json:"spent"`
	Remaining  int                  `json:"remaining"`
	Percentage float64              `json:"percentage"`
	Status     Level                `json:"status"`
}

type SummaryDTO struct {
	Categories     []CategoryStatusDTO          `json:"categories"`
	TotalBudgeted  int                          `json:"totalBudgeted"`
	TotalSpent     int                          `json:"totalSpent"`
	TotalRemaining int                          `json:"totalRemaining"`
	Unplanned      map[budget_plan.Category]int `json:"unplanned"`
}

type Handler struct {
	service  Service
	renderer StatusRenderer
}

func NewBudgetStatusHandler(service Service, renderer StatusRenderer) *Handler {
	return &Handler{service: service, renderer: renderer}
}

// GetStatus godoc
// @Summary Budget status
// @Description Spend against plan per category. Send Accept: text/csv for a CSV export.
// @Tags BudgetStatus
// @Produce json
// @Produce text/csv
// @Success 200 {object} SummaryDTO
// @Failure 403 {string} string "User not found"
// @Router /api/budgetstatus [get]
// @Security XUserId
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting budget status")
	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := h.renderer.Render(summary)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write csv: %v", err)
		}
		return
	}
	rest.WriteJSON(w, http.StatusOK, summaryToDTO(summary))
}

func summaryToDTO(summary Summary) SummaryDTO {
	categories := make([]CategoryStatusDTO, 0, len(summary.Categories))
	for _, c := range summary.Categories {
		categories = append(categories, CategoryStatusDTO{
			Category:   c.Category,
			Budgeted:   c.Budgeted,
			Spent:      c.Spent,
			Remaining:  c.Remaining,
			Percentage: c.Percentage,
			Status:     c.Status,
		})
	}
	return SummaryDTO{
		Categories:     categories,
		TotalBudgeted:  summary.TotalBudgeted,
		TotalSpent:     summary.TotalSpent,
		TotalRemaining: summary.TotalRemaining,
		Unplanned:      summary.Unplanned,
	}
}
