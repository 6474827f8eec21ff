package app

import (
	"context"
	"fmt"

	"github.com/busanbiff/tripbudget/internal/config"
	"github.com/busanbiff/tripbudget/internal/database"
	"github.com/busanbiff/tripbudget/internal/event_bus"
	"github.com/busanbiff/tripbudget/internal/kvstore"
	"github.com/busanbiff/tripbudget/internal/rest"
	"github.com/busanbiff/tripbudget/internal/utils"
	"github.com/busanbiff/tripbudget/pkg/accommodation"
	"github.com/busanbiff/tripbudget/pkg/advisor"
	"github.com/busanbiff/tripbudget/pkg/budget_plan"
	"github.com/busanbiff/tripbudget/pkg/budget_status"
	"github.com/busanbiff/tripbudget/pkg/expense"
	"github.com/busanbiff/tripbudget/pkg/itinerary"
	"github.com/busanbiff/tripbudget/pkg/recommendation"
	"github.com/busanbiff/tripbudget/pkg/snapshot"
	"github.com/busanbiff/tripbudget/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock     utils.Clock
	EventBus  *event_bus.EventBus
	Validator *rest.Validator
	Store     kvstore.Store

	UserService user.Service
	UserHandler *user.Handler

	BudgetPlanRepo    budget_plan.Repository
	BudgetPlanService *budget_plan.ServiceImpl
	BudgetPlanHandler *budget_plan.Handler

	RecommendationHandler *recommendation.Handler

	ExpenseRepo    expense.Repository
	ExpenseService *expense.ServiceImpl
	ExpenseHandler *expense.Handler

	BudgetStatusService *budget_status.ServiceImpl
	CsvStatusRenderer   *budget_status.CsvStatusRendererImpl
	BudgetStatusHandler *budget_status.Handler
	Notifier            *budget_status.Notifier

	SnapshotService *snapshot.ServiceImpl
	SnapshotHandler *snapshot.Handler

	Advisor              advisor.Generator
	AccommodationService *accommodation.ServiceImpl
	AccommodationHandler *accommodation.Handler
	ItineraryService     *itinerary.ServiceImpl
	ItineraryHandler     *itinerary.Handler

	closers []func()
}

// Close releases connections opened while building dependencies, in reverse order.
func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

// BuildDependencies initializes and wires all application services and handlers.
// Travelers live in Postgres unless the memory driver is selected; budget data lives in the configured store.
func BuildDependencies(ctx context.Context, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{
		Clock:     utils.NewFestivalClock(),
		EventBus:  event_bus.NewEventBus(),
		Validator: rest.NewValidator(),
	}

	var userRepo user.Repo
	var db *pgxpool.Pool
	if cfg.Storage.Driver != config.StorageMemory {
		if err := database.Migrate(cfg.Database); err != nil {
			return nil, err
		}
		pool, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		db = pool
		deps.closers = append(deps.closers, pool.Close)
		userRepo = user.NewUserRepo(db)
	} else {
		userRepo = user.NewStubUserRepository()
	}

	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		deps.Store = kvstore.NewPostgresStore(db)
	case config.StorageRedis:
		store, err := kvstore.NewRedisStore(cfg.Redis)
		if err != nil {
			deps.Close()
			return nil, err
		}
		deps.closers = append(deps.closers, func() {
			if err := store.Close(); err != nil {
				log.Errorf("failed to close redis store: %v", err)
			}
		})
		deps.Store = store
	case config.StorageMemory:
		deps.Store = kvstore.NewMemoryStore()
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownStorageDriver, cfg.Storage.Driver)
	}
	log.Infof("Using %s storage", cfg.Storage.Driver)

	deps.UserService = user.NewUserService(userRepo)
	deps.UserHandler = user.NewHandler(deps.UserService, deps.Validator)

	deps.BudgetPlanRepo = budget_plan.NewKVRepository(deps.Store)
	deps.BudgetPlanService = budget_plan.NewBudgetPlanService(deps.BudgetPlanRepo, deps.EventBus, deps.Clock)
	deps.BudgetPlanHandler = budget_plan.NewBudgetPlanHandler(deps.BudgetPlanService, deps.Validator)

	deps.RecommendationHandler = recommendation.NewHandler()

	deps.ExpenseRepo = expense.NewKVRepository(deps.Store)
	deps.ExpenseService = expense.NewExpenseService(deps.ExpenseRepo, deps.EventBus, deps.Clock)
	deps.ExpenseHandler = expense.NewExpenseHandler(deps.ExpenseService)

	deps.BudgetStatusService = budget_status.NewBudgetStatusService(deps.BudgetPlanService, deps.ExpenseService)
	deps.CsvStatusRenderer = budget_status.NewCsvStatusRenderer()
	deps.BudgetStatusHandler = budget_status.NewBudgetStatusHandler(deps.BudgetStatusService, deps.CsvStatusRenderer)
	deps.Notifier = budget_status.NewNotifier(deps.BudgetPlanRepo, deps.ExpenseRepo)
	deps.closers = append(deps.closers, deps.Notifier.Subscribe(deps.EventBus))

	deps.SnapshotService = snapshot.NewSnapshotService(deps.BudgetPlanRepo, deps.ExpenseService)
	deps.SnapshotHandler = snapshot.NewSnapshotHandler(deps.SnapshotService)

	gemini, err := advisor.NewGeminiClient(ctx, cfg.Gemini)
	if err != nil {
		log.Warnf("AI advisor disabled: %v", err)
		deps.Advisor = advisor.Unavailable{Reason: err}
	} else {
		deps.Advisor = gemini
	}
	deps.AccommodationService = accommodation.NewAccommodationService(deps.Advisor, deps.BudgetPlanService)
	deps.AccommodationHandler = accommodation.NewAccommodationHandler(deps.AccommodationService, deps.Validator)
	deps.ItineraryService = itinerary.NewItineraryService(deps.Advisor, deps.BudgetPlanService)
	deps.ItineraryHandler = itinerary.NewItineraryHandler(deps.ItineraryService, deps.Validator)

	return deps, nil
}
