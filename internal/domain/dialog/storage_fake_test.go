package dialog

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/brazillianlabs/poupazap/internal/domain/finance"
)

// fakeStorage is an in-memory finance.Storage for handler tests. Error fields
// force the corresponding write to fail.
type fakeStorage struct {
	mu           sync.Mutex
	profiles     map[string]*finance.UserProfile
	transactions []finance.Transaction
	cards        []finance.CreditCard
	goals        []finance.Goal
	scheduled    []finance.ScheduledExpense

	addTransactionErr error
	createGoalErr     error
	setBudgetErr      error
	getCardsErr       error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{profiles: make(map[string]*finance.UserProfile)}
}

func (f *fakeStorage) GetOrCreateUser(_ context.Context, userID string, defaultCategories []string) (*finance.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	p := &finance.UserProfile{
		UserID:     userID,
		State:      string(StateMenu),
		Categories: append([]string(nil), defaultCategories...),
	}
	f.profiles[userID] = p
	cp := *p
	return &cp, nil
}

func (f *fakeStorage) SaveSession(_ context.Context, profile *finance.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *profile
	f.profiles[profile.UserID] = &cp
	return nil
}

func (f *fakeStorage) SetMonthlyBudget(_ context.Context, userID string, amountMinor int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setBudgetErr != nil {
		return f.setBudgetErr
	}
	if p, ok := f.profiles[userID]; ok {
		p.MonthlyBudgetMinor = amountMinor
	}
	return nil
}

func (f *fakeStorage) AddTransaction(_ context.Context, tx *finance.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addTransactionErr != nil {
		return f.addTransactionErr
	}
	cp := *tx
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	f.transactions = append(f.transactions, cp)
	return nil
}

func (f *fakeStorage) GetRecentTransactions(_ context.Context, userID string, limit int) ([]finance.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []finance.Transaction
	for i := len(f.transactions) - 1; i >= 0 && len(out) < limit; i-- {
		if f.transactions[i].UserID == userID {
			out = append(out, f.transactions[i])
		}
	}
	return out, nil
}

func (f *fakeStorage) GetMonthlyBalance(_ context.Context, userID string) (finance.MonthlyBalance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var b finance.MonthlyBalance
	for _, tx := range f.transactions {
		if tx.UserID != userID {
			continue
		}
		switch tx.Type {
		case finance.TransactionIncome:
			b.IncomeMinor += tx.AmountMinor
		case finance.TransactionExpense:
			b.ExpensesMinor += tx.AmountMinor
		}
	}
	b.BalanceMinor = b.IncomeMinor - b.ExpensesMinor
	return b, nil
}

func (f *fakeStorage) GetCategoryExpenses(_ context.Context, userID string, categories []string) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]int64)
	for _, tx := range f.transactions {
		if tx.UserID == userID && tx.Type == finance.TransactionExpense {
			out[tx.Category] += tx.AmountMinor
		}
	}
	return out, nil
}

func (f *fakeStorage) CountTransactions(_ context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, tx := range f.transactions {
		if tx.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStorage) GetCreditCards(_ context.Context, userID string) ([]finance.CreditCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getCardsErr != nil {
		return nil, f.getCardsErr
	}
	var out []finance.CreditCard
	for _, c := range f.cards {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStorage) AddCreditCard(_ context.Context, userID, nickname string) (*finance.CreditCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	card := finance.CreditCard{ID: uuid.New(), UserID: userID, Nickname: nickname}
	f.cards = append(f.cards, card)
	return &card, nil
}

func (f *fakeStorage) RemoveCreditCard(_ context.Context, userID string, cardID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.cards {
		if c.UserID == userID && c.ID == cardID {
			f.cards = append(f.cards[:i], f.cards[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStorage) CreateGoal(_ context.Context, goal *finance.Goal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createGoalErr != nil {
		return f.createGoalErr
	}
	cp := *goal
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	f.goals = append(f.goals, cp)
	return nil
}

func (f *fakeStorage) CountGoals(_ context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, g := range f.goals {
		if g.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStorage) AddScheduledExpense(_ context.Context, exp *finance.ScheduledExpense) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *exp
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	f.scheduled = append(f.scheduled, cp)
	return nil
}

func (f *fakeStorage) ListDueScheduledExpenses(_ context.Context, dayOfMonth int) ([]finance.ScheduledExpense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []finance.ScheduledExpense
	for _, e := range f.scheduled {
		if e.DayOfMonth == dayOfMonth {
			out = append(out, e)
		}
	}
	return out, nil
}

var _ finance.Storage = (*fakeStorage)(nil)
