package expense

import (
	"context"
	"slices"
	"sync"
)

type RepositoryStub struct {
	mu       sync.Mutex
	expenses map[int][]Expense
	// Stores counts StoreExpenses calls.
	Stores int
	// StoreErr, when set, fails StoreExpenses without touching the ledger.
	StoreErr error
}

func NewStubExpenseRepo() *RepositoryStub {
	return &RepositoryStub{expenses: map[int][]Expense{}}
}

func (s *RepositoryStub) GetExpenses(_ context.Context, userId int) ([]Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expenses, ok := s.expenses[userId]
	if !ok {
		return []Expense{}, nil
	}
	return slices.Clone(expenses), nil
}

func (s *RepositoryStub) StoreExpenses(_ context.Context, userId int, expenses []Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Stores++
	if s.StoreErr != nil {
		return s.StoreErr
	}
	s.expenses[userId] = slices.Clone(expenses)
	return nil
}

func (s *RepositoryStub) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = map[int][]Expense{}
	s.Stores = 0
	s.StoreErr = nil
}
