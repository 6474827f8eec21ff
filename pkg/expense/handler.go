package expense

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/busanbiff/tripbudget/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type DraftDTO struct {
	Category    string `json:"category"`
	Amount      int    `json:"amount"`
	Description string `json:"description"`
	Location    string `json:"location,omitempty"`
	Date        string `json:"date,omitempty"`
}

type Handler struct {
	service Service
}

func NewExpenseHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListExpenses godoc
// @Summary List expenses
// @Description Expenses of the current traveler in the order they were added
// @Tags Expense
// @Produce json
// @Success 200 {array} Expense
// @Failure 403 {string} string "User not found"
// @Router /api/expense [get]
// @Security XUserId
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing expenses")
	expenses, err := h.service.ListExpenses(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, expenses)
}

// AddExpense godoc
// @Summary Add an expense
// @Tags Expense
// @Accept json
// @Produce json
// @Param expense body DraftDTO true "Expense"
// @Success 201 {object} Expense
// @Failure 400 {object} rest.ErrorResponse "Invalid expense"
// @Failure 403 {string} string "User not found"
// @Router /api/expense [post]
// @Security XUserId
func (h *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	log.Debug("Adding expense")
	var draftDTO DraftDTO
	if err := json.NewDecoder(r.Body).Decode(&draftDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	log.Tracef("Adding expense: %+v", draftDTO)

	expense, err := h.service.AddExpense(r.Context(), Draft(draftDTO))
	if err != nil {
		if errors.Is(err, ErrInvalidExpense) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid expense", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, expense)
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Description Deleting an unknown id succeeds without changes
// @Tags Expense
// @Param expenseId path string true "Expense ID"
// @Success 204 "No Content"
// @Failure 403 {string} string "User not found"
// @Router /api/expense/{expenseId} [delete]
// @Security XUserId
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	expenseId := mux.Vars(r)["expenseId"]
	log.Debugf("Deleting expense %s", expenseId)
	if err := h.service.DeleteExpense(r.Context(), expenseId); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
