package bot

import (
	"context"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/household-finance/internal/database"
	"gitlab.com/yelinaung/household-finance/internal/gemini"
	appmodels "gitlab.com/yelinaung/household-finance/internal/models"
	"gitlab.com/yelinaung/household-finance/internal/repository"
	"gitlab.com/yelinaung/household-finance/internal/snapshot"
)

// UserStore registers Telegram users.
type UserStore interface {
	UpsertUser(ctx context.Context, user *appmodels.User) error
	GetUserByID(ctx context.Context, id int64) (*appmodels.User, error)
	ListUserIDs(ctx context.Context) ([]int64, error)
}

// ExpenseStore reads and writes expenses.
type ExpenseStore interface {
	snapshot.ExpenseStore
	Create(ctx context.Context, expense *appmodels.Expense) error
	Delete(ctx context.Context, userID, id int64) error
}

// IncomeStore reads and writes incomes.
type IncomeStore interface {
	snapshot.IncomeStore
	Create(ctx context.Context, income *appmodels.Income) error
	Delete(ctx context.Context, userID, id int64) error
}

// ProfileStore reads and writes salary schedules, budgets and recurring payments.
type ProfileStore interface {
	snapshot.ProfileStore
	SetSalary(ctx context.Context, userID int64, slot int, rule appmodels.PaydayRule) error
	SetMonthlyBudget(ctx context.Context, userID int64, budget *decimal.Decimal) error
	AddRecurring(ctx context.Context, userID int64, p *appmodels.RecurringPayment) error
	DeleteRecurring(ctx context.Context, userID int64, id string) error
}

// GoalStore reads and writes savings goals.
type GoalStore interface {
	snapshot.GoalStore
	CreateGoal(ctx context.Context, goal *appmodels.Goal) error
	Deposit(ctx context.Context, userID int64, goalID string, amount decimal.Decimal) (*appmodels.Goal, error)
	SetMain(ctx context.Context, userID int64, goalID string) error
	DeleteGoal(ctx context.Context, userID int64, goalID string) error
}

// Summarizer writes an AI report about a user's finances.
type Summarizer interface {
	Summarize(ctx context.Context, data gemini.FinancialData, userName, currency string) (string, error)
}

// Stores groups the persistence the bot depends on.
type Stores struct {
	Users    UserStore
	Expenses ExpenseStore
	Incomes  IncomeStore
	Profiles ProfileStore
	Goals    GoalStore
}

// RepositoryStores backs every store with its Postgres repository.
func RepositoryStores(db database.PGXDB) Stores {
	return Stores{
		Users:    repository.NewUserRepository(db),
		Expenses: repository.NewExpenseRepository(db),
		Incomes:  repository.NewIncomeRepository(db),
		Profiles: repository.NewProfileRepository(db),
		Goals:    repository.NewGoalRepository(db),
	}
}
