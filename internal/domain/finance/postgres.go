package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgxpool.Pool the repository needs. It lets tests
// substitute a pgxmock pool.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository implements Storage using PostgreSQL.
type PostgresRepository struct {
	db Querier
}

// NewPostgresRepository creates a new PostgreSQL finance repository.
func NewPostgresRepository(db Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetOrCreateUser loads the user's profile, creating it with the default
// category set on first contact.
func (r *PostgresRepository) GetOrCreateUser(ctx context.Context, userID string, defaultCategories []string) (*UserProfile, error) {
	query := `
		INSERT INTO users (user_id, state, categories)
		VALUES ($1, 'menu', $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING user_id, state, categories, monthly_budget_minor, created_at`

	var p UserProfile
	err := r.db.QueryRow(ctx, query, userID, defaultCategories).Scan(
		&p.UserID, &p.State, &p.Categories, &p.MonthlyBudgetMinor, &p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create user: %w", err)
	}
	return &p, nil
}

// SaveSession persists the dialogue state and profile fields between messages.
func (r *PostgresRepository) SaveSession(ctx context.Context, profile *UserProfile) error {
	query := `
		UPDATE users
		SET state = $2, categories = $3, monthly_budget_minor = $4
		WHERE user_id = $1`

	if _, err := r.db.Exec(ctx, query, profile.UserID, profile.State, profile.Categories, profile.MonthlyBudgetMinor); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// SetMonthlyBudget updates the user's monthly budget.
func (r *PostgresRepository) SetMonthlyBudget(ctx context.Context, userID string, amountMinor int64) error {
	query := `UPDATE users SET monthly_budget_minor = $2 WHERE user_id = $1`

	if _, err := r.db.Exec(ctx, query, userID, amountMinor); err != nil {
		return fmt.Errorf("failed to set monthly budget: %w", err)
	}
	return nil
}

// AddTransaction inserts a new income or expense.
func (r *PostgresRepository) AddTransaction(ctx context.Context, tx *Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}

	query := `
		INSERT INTO transactions (id, user_id, type, amount_minor, category, description, card_id, is_voice)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	err := r.db.QueryRow(ctx, query,
		tx.ID, tx.UserID, tx.Type, tx.AmountMinor, tx.Category, tx.Description, tx.CardID, tx.IsVoice,
	).Scan(&tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add transaction: %w", err)
	}
	return nil
}

// GetRecentTransactions returns the user's latest transactions, newest first,
// with the card nickname resolved when present.
func (r *PostgresRepository) GetRecentTransactions(ctx context.Context, userID string, limit int) ([]Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.type, t.amount_minor, t.category, t.description,
		       t.card_id, c.nickname, t.is_voice, t.created_at
		FROM transactions t
		LEFT JOIN credit_cards c ON t.card_id = c.id
		WHERE t.user_id = $1
		ORDER BY t.created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Type, &t.AmountMinor, &t.Category, &t.Description,
			&t.CardID, &t.CardName, &t.IsVoice, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetMonthlyBalance aggregates income and expenses for the current month.
func (r *PostgresRepository) GetMonthlyBalance(ctx context.Context, userID string) (MonthlyBalance, error) {
	query := `
		SELECT
			COALESCE(SUM(amount_minor) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount_minor) FILTER (WHERE type = 'expense'), 0)
		FROM transactions
		WHERE user_id = $1
		  AND date_trunc('month', created_at) = date_trunc('month', now())`

	var b MonthlyBalance
	if err := r.db.QueryRow(ctx, query, userID).Scan(&b.IncomeMinor, &b.ExpensesMinor); err != nil {
		return MonthlyBalance{}, fmt.Errorf("failed to get monthly balance: %w", err)
	}
	b.BalanceMinor = b.IncomeMinor - b.ExpensesMinor
	return b, nil
}

// GetCategoryExpenses returns current-month expense totals per category.
// Every requested category appears in the result, zero when unused.
func (r *PostgresRepository) GetCategoryExpenses(ctx context.Context, userID string, categories []string) (map[string]int64, error) {
	query := `
		SELECT category, COALESCE(SUM(amount_minor), 0)
		FROM transactions
		WHERE user_id = $1
		  AND type = 'expense'
		  AND date_trunc('month', created_at) = date_trunc('month', now())
		GROUP BY category`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category expenses: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int64, len(categories))
	for _, c := range categories {
		totals[c] = 0
	}
	for rows.Next() {
		var category string
		var sum int64
		if err := rows.Scan(&category, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals[category] = sum
	}
	return totals, rows.Err()
}

// CountTransactions returns the total number of transactions for the user.
func (r *PostgresRepository) CountTransactions(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// GetCreditCards lists the user's registered cards, oldest first.
func (r *PostgresRepository) GetCreditCards(ctx context.Context, userID string) ([]CreditCard, error) {
	query := `
		SELECT id, user_id, nickname, created_at
		FROM credit_cards
		WHERE user_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list credit cards: %w", err)
	}
	defer rows.Close()

	var out []CreditCard
	for rows.Next() {
		var c CreditCard
		if err := rows.Scan(&c.ID, &c.UserID, &c.Nickname, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan credit card: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AddCreditCard registers a new card nickname for the user.
func (r *PostgresRepository) AddCreditCard(ctx context.Context, userID, nickname string) (*CreditCard, error) {
	query := `
		INSERT INTO credit_cards (id, user_id, nickname)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	card := &CreditCard{ID: uuid.New(), UserID: userID, Nickname: nickname}
	if err := r.db.QueryRow(ctx, query, card.ID, userID, nickname).Scan(&card.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to add credit card: %w", err)
	}
	return card, nil
}

// RemoveCreditCard deletes one of the user's cards.
func (r *PostgresRepository) RemoveCreditCard(ctx context.Context, userID string, cardID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM credit_cards WHERE user_id = $1 AND id = $2`, userID, cardID)
	if err != nil {
		return fmt.Errorf("failed to remove credit card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("credit card not found")
	}
	return nil
}

// CreateGoal inserts a new goal.
func (r *PostgresRepository) CreateGoal(ctx context.Context, goal *Goal) error {
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}

	query := `
		INSERT INTO goals (id, user_id, name, target_minor, months, monthly_target_minor)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.QueryRow(ctx, query,
		goal.ID, goal.UserID, goal.Name, goal.TargetMinor, goal.Months, goal.MonthlyTargetMinor,
	).Scan(&goal.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

// CountGoals returns the number of goals for the user.
func (r *PostgresRepository) CountGoals(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM goals WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count goals: %w", err)
	}
	return count, nil
}

// AddScheduledExpense registers a recurring expense.
func (r *PostgresRepository) AddScheduledExpense(ctx context.Context, exp *ScheduledExpense) error {
	if exp.ID == uuid.Nil {
		exp.ID = uuid.New()
	}

	query := `
		INSERT INTO scheduled_expenses (id, user_id, category, amount_minor, day_of_month)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.QueryRow(ctx, query,
		exp.ID, exp.UserID, exp.Category, exp.AmountMinor, exp.DayOfMonth,
	).Scan(&exp.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add scheduled expense: %w", err)
	}
	return nil
}

// ListDueScheduledExpenses returns every scheduled expense due on the given
// day of month, across all users.
func (r *PostgresRepository) ListDueScheduledExpenses(ctx context.Context, dayOfMonth int) ([]ScheduledExpense, error) {
	query := `
		SELECT id, user_id, category, amount_minor, day_of_month, created_at
		FROM scheduled_expenses
		WHERE day_of_month = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, dayOfMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled expenses: %w", err)
	}
	defer rows.Close()

	var out []ScheduledExpense
	for rows.Next() {
		var e ScheduledExpense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Category, &e.AmountMinor, &e.DayOfMonth, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scheduled expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
