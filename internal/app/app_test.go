package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/busanbiff/tripbudget/internal/config"
	"github.com/busanbiff/tripbudget/pkg/budget_plan"
	"github.com/busanbiff/tripbudget/pkg/budget_status"
	"github.com/busanbiff/tripbudget/pkg/expense"
	"github.com/busanbiff/tripbudget/pkg/user"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	cfg := config.Defaults()
	cfg.Storage.Driver = config.StorageMemory
	deps, err := BuildDependencies(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(deps.Close)
	return NewRouter(deps)
}

func call(t *testing.T, r http.Handler, method, path, uid, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if uid != "" {
		req.Header.Set(userIdHeader, uid)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func createTraveler(t *testing.T, r http.Handler, username string) string {
	t.Helper()
	rr := call(t, r, http.MethodPost, "/api/user", "", `{"username":"`+username+`","displayName":"Traveler"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created user.UserDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	require.NotEmpty(t, created.Uid)
	return created.Uid
}

func TestRouter_Authentication(t *testing.T) {
	r := newTestRouter(t)

	t.Run("should serve public routes without header", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, call(t, r, http.MethodGet, "/api/budgetplan/tiers", "", "").Code)
		assert.Equal(t, http.StatusOK, call(t, r, http.MethodGet, "/api/recommendation?interests=movie&days=2", "", "").Code)
	})

	t.Run("should reject private routes without header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call(t, r, http.MethodGet, "/api/budgetplan", "", "").Code)
		assert.Equal(t, http.StatusUnauthorized, call(t, r, http.MethodGet, "/api/expense", "", "").Code)
	})

	t.Run("should reject unknown traveler", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, call(t, r, http.MethodGet, "/api/budgetplan", "no-such-uid", "").Code)
	})

	t.Run("should resolve current traveler", func(t *testing.T) {
		uid := createTraveler(t, r, "auth-check")

		rr := call(t, r, http.MethodGet, "/api/user/current", uid, "")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"username":"auth-check"`)
	})
}

func TestRouter_TripBudgetFlow(t *testing.T) {
	r := newTestRouter(t)
	uid := createTraveler(t, r, "minji")
	other := createTraveler(t, r, "joon")

	// no plan yet
	assert.Equal(t, http.StatusNotFound, call(t, r, http.MethodGet, "/api/budgetplan", uid, "").Code)

	// create plan
	rr := call(t, r, http.MethodPost, "/api/budgetplan", uid, `{"tier":"medium","days":3,"interests":["movie"]}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	rr = call(t, r, http.MethodGet, "/api/budgetplan", uid, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"tier":"medium"`)

	// record expenses
	rr = call(t, r, http.MethodPost, "/api/expense", uid, `{"category":"food","amount":64000,"description":"Dwaeji gukbap","date":"2026-10-02"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	rr = call(t, r, http.MethodPost, "/api/expense", uid, `{"category":"film","amount":31000,"description":"Three screenings","date":"2026-10-03"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var film expense.Expense
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &film))
	assert.Equal(t, http.StatusBadRequest, call(t, r, http.MethodPost, "/api/expense", uid, `{"category":"casino","amount":1000,"description":"x"}`).Code)

	// status
	rr = call(t, r, http.MethodGet, "/api/budgetstatus", uid, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var summary budget_status.SummaryDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	statuses := map[budget_plan.Category]budget_status.CategoryStatusDTO{}
	for _, c := range summary.Categories {
		statuses[c.Category] = c
	}
	assert.Equal(t, budget_status.Warning, statuses[budget_plan.Food].Status)
	assert.Equal(t, budget_status.Over, statuses[budget_plan.Film].Status)
	assert.Equal(t, budget_status.Good, statuses[budget_plan.Lodging].Status)
	assert.Equal(t, 95000, summary.TotalSpent)

	// csv export
	req := httptest.NewRequest(http.MethodGet, "/api/budgetstatus", nil)
	req.Header.Set(userIdHeader, uid)
	req.Header.Set("Accept", "text/csv")
	csv := httptest.NewRecorder()
	r.ServeHTTP(csv, req)
	require.Equal(t, http.StatusOK, csv.Code)
	assert.True(t, strings.HasPrefix(csv.Body.String(), "Category,Budgeted,Spent,Remaining,Percentage,Status"))

	// data is scoped per traveler
	rr = call(t, r, http.MethodGet, "/api/expense", other, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	// snapshot moves state to another traveler
	rr = call(t, r, http.MethodGet, "/api/snapshot", uid, "")
	require.Equal(t, http.StatusOK, rr.Code)
	snapshotBody := rr.Body.String()
	assert.Equal(t, http.StatusNoContent, call(t, r, http.MethodPut, "/api/snapshot", other, snapshotBody).Code)
	rr = call(t, r, http.MethodGet, "/api/snapshot", other, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, snapshotBody, rr.Body.String())

	// delete expense
	assert.Equal(t, http.StatusNoContent, call(t, r, http.MethodDelete, "/api/expense/"+film.Id, uid, "").Code)
	rr = call(t, r, http.MethodGet, "/api/expense", uid, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), film.Id)

	// advisor is not configured in tests
	assert.Equal(t, http.StatusBadGateway, call(t, r, http.MethodPost, "/api/itinerary", uid, `{"travelStyle":"relaxed"}`).Code)
	assert.Equal(t, http.StatusBadGateway, call(t, r, http.MethodPost, "/api/accommodation/search", uid, `{"checkIn":"2026-10-02","checkOut":"2026-10-05"}`).Code)

	// reset plan
	assert.Equal(t, http.StatusNoContent, call(t, r, http.MethodDelete, "/api/budgetplan", uid, "").Code)
	assert.Equal(t, http.StatusNotFound, call(t, r, http.MethodGet, "/api/budgetplan", uid, "").Code)
	assert.Equal(t, http.StatusNotFound, call(t, r, http.MethodPost, "/api/itinerary", uid, "").Code)
}
