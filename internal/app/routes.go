package app

import (
	"github.com/gorilla/mux"
)

// publicRoutes do not require the X-User-Id header.
var publicRoutes = map[string]bool{
	"createUser":            true,
	"listTiers":             true,
	"previewRecommendation": true,
}

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Travelers
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST").Name("createUser")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")

	// Budget plan
	r.HandleFunc("/api/budgetplan/tiers", deps.BudgetPlanHandler.ListTiers).Methods("GET").Name("listTiers")
	r.HandleFunc("/api/budgetplan", deps.BudgetPlanHandler.CreatePlan).Methods("POST")
	r.HandleFunc("/api/budgetplan", deps.BudgetPlanHandler.GetCurrentPlan).Methods("GET")
	r.HandleFunc("/api/budgetplan", deps.BudgetPlanHandler.DeletePlan).Methods("DELETE")

	// Recommendations
	r.HandleFunc("/api/recommendation", deps.RecommendationHandler.Preview).Methods("GET").Name("previewRecommendation")

	// Expenses
	r.HandleFunc("/api/expense", deps.ExpenseHandler.ListExpenses).Methods("GET")
	r.HandleFunc("/api/expense", deps.ExpenseHandler.AddExpense).Methods("POST")
	r.HandleFunc("/api/expense/{expenseId}", deps.ExpenseHandler.DeleteExpense).Methods("DELETE")

	// Budget status
	r.HandleFunc("/api/budgetstatus", deps.BudgetStatusHandler.GetStatus).Methods("GET")

	// Snapshot
	r.HandleFunc("/api/snapshot", deps.SnapshotHandler.Export).Methods("GET")
	r.HandleFunc("/api/snapshot", deps.SnapshotHandler.Import).Methods("PUT")

	// AI advisor
	r.HandleFunc("/api/accommodation/search", deps.AccommodationHandler.Search).Methods("POST")
	r.HandleFunc("/api/itinerary", deps.ItineraryHandler.Generate).Methods("POST")
}
