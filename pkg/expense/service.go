package expense

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/busanbiff/tripbudget/internal/event_bus"
	"github.com/busanbiff/tripbudget/internal/utils"
	"github.com/busanbiff/tripbudget/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	AddExpense(ctx context.Context, draft Draft) (Expense, error)
	// DeleteExpense removes the expense with id. Unknown ids are ignored.
	DeleteExpense(ctx context.Context, id string) error
	ListExpenses(ctx context.Context) ([]Expense, error)
	// ReplaceExpenses swaps the whole ledger. commit runs while the ledger is still locked; when
	// it fails the previous ledger is put back and commit's error is returned.
	ReplaceExpenses(ctx context.Context, expenses []Expense, commit func() error) error
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
	clock    utils.Clock
	locks    userLocks
}

func NewExpenseService(repo Repository, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus, clock: clock}
}

func (s *ServiceImpl) AddExpense(ctx context.Context, draft Draft) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	draft, category, err := normalizeDraft(draft)
	if err != nil {
		return Expense{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Expense{}, fmt.Errorf("could not generate expense id: %w", err)
	}
	date := draft.Date
	if date == "" {
		date = utils.Today(s.clock)
	}
	expense := Expense{
		Id:          id.String(),
		Category:    category,
		Amount:      draft.Amount,
		Description: draft.Description,
		Location:    draft.Location,
		Date:        date,
		CreatedAt:   s.clock.Now(),
	}

	unlock := s.locks.lock(userId)
	expenses, err := s.repo.GetExpenses(ctx, userId)
	if err == nil {
		err = s.repo.StoreExpenses(ctx, userId, append(expenses, expense))
	}
	unlock()
	if err != nil {
		return Expense{}, err
	}
	log.Debugf("added expense %s (%s %d) for user %d", expense.Id, expense.Category, expense.Amount, userId)

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.ExpenseAddedType, event_bus.ExpenseAdded{
		UserId:   userId,
		Id:       expense.Id,
		Category: string(expense.Category),
		Amount:   expense.Amount,
	}))
	if err != nil {
		log.Errorf("failed to publish expense added event: %v", err)
	}
	return expense, nil
}

func (s *ServiceImpl) DeleteExpense(ctx context.Context, id string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	unlock := s.locks.lock(userId)
	expenses, err := s.repo.GetExpenses(ctx, userId)
	if err != nil {
		unlock()
		return err
	}
	idx := slices.IndexFunc(expenses, func(e Expense) bool { return e.Id == id })
	if idx == -1 {
		unlock()
		log.Debugf("expense %s not found for user %d, nothing to delete", id, userId)
		return nil
	}
	deleted := expenses[idx]
	err = s.repo.StoreExpenses(ctx, userId, slices.Delete(expenses, idx, idx+1))
	unlock()
	if err != nil {
		return err
	}

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.ExpenseDeletedType, event_bus.ExpenseDeleted{
		UserId:   userId,
		Id:       deleted.Id,
		Category: string(deleted.Category),
		Amount:   deleted.Amount,
	}))
	if err != nil {
		log.Errorf("failed to publish expense deleted event: %v", err)
	}
	return nil
}

func (s *ServiceImpl) ListExpenses(ctx context.Context) ([]Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetExpenses(ctx, userId)
}

func (s *ServiceImpl) ReplaceExpenses(ctx context.Context, expenses []Expense, commit func() error) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	unlock := s.locks.lock(userId)
	defer unlock()
	previous, err := s.repo.GetExpenses(ctx, userId)
	if err != nil {
		return err
	}
	if err := s.repo.StoreExpenses(ctx, userId, expenses); err != nil {
		return err
	}
	if commit == nil {
		return nil
	}
	if err := commit(); err != nil {
		if restoreErr := s.repo.StoreExpenses(ctx, userId, previous); restoreErr != nil {
			log.Errorf("failed to restore ledger of user %d: %v", userId, restoreErr)
		}
		return err
	}
	log.Debugf("replaced ledger of user %d (%d expenses)", userId, len(expenses))
	return nil
}

// userLocks serializes read-modify-write cycles on one traveler's ledger.
type userLocks struct {
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func (l *userLocks) lock(userId int) (unlock func()) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[int]*sync.Mutex)
	}
	m, ok := l.locks[userId]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userId] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
