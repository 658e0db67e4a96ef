// Package finance defines the storage contract the dialogue layer persists
// through, together with its PostgreSQL implementation.
package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TransactionType distinguishes money in from money out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction is a single recorded income or expense. Amounts are stored in
// minor units (cents) of the user's currency.
type Transaction struct {
	ID          uuid.UUID
	UserID      string
	Type        TransactionType
	AmountMinor int64
	Category    string
	Description string
	CardID      *uuid.UUID
	CardName    *string
	IsVoice     bool
	CreatedAt   time.Time
}

// CreditCard is a card registered by the user, referenced by nickname in
// quick-expense messages.
type CreditCard struct {
	ID        uuid.UUID
	UserID    string
	Nickname  string
	CreatedAt time.Time
}

// MonthlyBalance aggregates the current month.
type MonthlyBalance struct {
	IncomeMinor   int64
	ExpensesMinor int64
	BalanceMinor  int64
}

// Goal is a savings goal with a fixed deadline in months.
type Goal struct {
	ID                 uuid.UUID
	UserID             string
	Name               string
	TargetMinor        int64
	Months             int
	MonthlyTargetMinor int64
	CreatedAt          time.Time
}

// ScheduledExpense is a recurring expense posted automatically on a fixed day
// of each month.
type ScheduledExpense struct {
	ID          uuid.UUID
	UserID      string
	Category    string
	AmountMinor int64
	DayOfMonth  int
	CreatedAt   time.Time
}

// UserProfile holds the persisted part of a session: the dialogue state plus
// the user-configurable profile fields.
type UserProfile struct {
	UserID             string
	State              string
	Categories         []string
	MonthlyBudgetMinor int64
	CreatedAt          time.Time
}

// Storage is the persistence collaborator of the dialogue core. All methods
// are synchronous from the caller's point of view: a handler must not
// consider its response final until the write it triggered has returned.
type Storage interface {
	GetOrCreateUser(ctx context.Context, userID string, defaultCategories []string) (*UserProfile, error)
	SaveSession(ctx context.Context, profile *UserProfile) error
	SetMonthlyBudget(ctx context.Context, userID string, amountMinor int64) error

	AddTransaction(ctx context.Context, tx *Transaction) error
	GetRecentTransactions(ctx context.Context, userID string, limit int) ([]Transaction, error)
	GetMonthlyBalance(ctx context.Context, userID string) (MonthlyBalance, error)
	GetCategoryExpenses(ctx context.Context, userID string, categories []string) (map[string]int64, error)
	CountTransactions(ctx context.Context, userID string) (int64, error)

	GetCreditCards(ctx context.Context, userID string) ([]CreditCard, error)
	AddCreditCard(ctx context.Context, userID, nickname string) (*CreditCard, error)
	RemoveCreditCard(ctx context.Context, userID string, cardID uuid.UUID) error

	CreateGoal(ctx context.Context, goal *Goal) error
	CountGoals(ctx context.Context, userID string) (int64, error)

	AddScheduledExpense(ctx context.Context, exp *ScheduledExpense) error
	ListDueScheduledExpenses(ctx context.Context, dayOfMonth int) ([]ScheduledExpense, error)
}
