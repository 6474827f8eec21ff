package event_bus

const (
	BudgetPlanCreatedType EventType = "budget_plan.created"
	BudgetPlanDeletedType EventType = "budget_plan.deleted"
	ExpenseAddedType      EventType = "expense.added"
	ExpenseDeletedType    EventType = "expense.deleted"
)

type BudgetPlanCreated struct {
	UserId           int
	Tier             string
	Days             int
	YouthPassApplied bool
}

type BudgetPlanDeleted struct {
	UserId int
}

type ExpenseAdded struct {
	UserId   int
	Id       string
	Category string
	Amount   int
}

type ExpenseDeleted struct {
	UserId   int
	Id       string
	Category string
	Amount   int
}
