package expense

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/busanbiff/tripbudget/internal/kvstore"
	log "github.com/sirupsen/logrus"
)

const storageKey = "expenses"

type Repository interface {
	// GetExpenses returns the ledger in insertion order; an empty ledger is not an error.
	GetExpenses(ctx context.Context, userId int) ([]Expense, error)
	StoreExpenses(ctx context.Context, userId int, expenses []Expense) error
}

// KVRepository keeps the whole ledger as one JSON array under the "expenses" key.
type KVRepository struct {
	store kvstore.Store
}

func NewKVRepository(store kvstore.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) GetExpenses(ctx context.Context, userId int) ([]Expense, error) {
	value, err := r.store.Get(ctx, userId, storageKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return []Expense{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not load expenses: %w", err)
	}

	var expenses []Expense
	if err := json.Unmarshal(value, &expenses); err != nil {
		log.Warnf("ignoring malformed expenses of user %d: %v", userId, err)
		return []Expense{}, nil
	}
	if expenses == nil {
		expenses = []Expense{}
	}
	return expenses, nil
}

func (r *KVRepository) StoreExpenses(ctx context.Context, userId int, expenses []Expense) error {
	if expenses == nil {
		expenses = []Expense{}
	}
	value, err := json.Marshal(expenses)
	if err != nil {
		return fmt.Errorf("could not encode expenses: %w", err)
	}
	if err := r.store.Put(ctx, userId, storageKey, value); err != nil {
		return fmt.Errorf("could not store expenses: %w", err)
	}
	return nil
}
